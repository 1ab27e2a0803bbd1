// Command dc is a terminal client for the docchat document-QA service.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/docchat/docchat-cli/internal/api"
	"github.com/docchat/docchat-cli/internal/config"
	"github.com/docchat/docchat-cli/internal/errs"
	"github.com/docchat/docchat-cli/internal/model"
	"github.com/docchat/docchat-cli/internal/nav"
	"github.com/docchat/docchat-cli/internal/registry"
	"github.com/docchat/docchat-cli/internal/session"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// app bundles the wired client components for one invocation.
type app struct {
	cfg   *config.Config
	store *session.Store
	gw    *api.Gateway
	reg   *registry.Client
	log   *zap.Logger
}

func usage() {
	fmt.Fprintf(os.Stderr, `dc: docchat terminal client
Usage:
  dc [-url BASE] [-v] <cmd> [args]

Commands:
  version
  register  -u <username> -e <email> -p <password>
  login     -u <username> -p <password>            (saves tokens)
  logout                                           (clears saved state)
  whoami                                           (shows token subject/expiry)
  docs                                             (list uploaded documents)
  upload    -file <pdf> [-title t] [-desc d]
  select    -id <document id>
  chat                                             (interactive; /clear, /quit)
`)
	os.Exit(2)
}

func main() {
	urlFlag := flag.String("url", "", "override API base URL")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *urlFlag != "" {
		cfg.APIBaseURL = *urlFlag
	}

	logger := zap.NewNop()
	if *verbose {
		logger, _ = zap.NewDevelopment()
	}
	defer func() { _ = logger.Sync() }()

	store := session.Open(cfg.StateDir)
	gw := api.NewGateway(cfg.APIBaseURL, cfg.HTTPTimeout, store, logger)
	a := &app{
		cfg:   cfg,
		store: store,
		gw:    gw,
		reg:   registry.New(gw, store, logger),
		log:   logger,
	}

	ctx := context.Background()

	switch cmd {
	case "version":
		fmt.Printf("dc %s (%s)\n", version, buildDate)
	case "register":
		a.cmdRegister(ctx, args)
	case "login":
		a.cmdLogin(ctx, args)
	case "logout":
		if err := store.Clear(); err != nil {
			fail(a, err)
		}
		fmt.Println("logged out")
	case "whoami":
		a.cmdWhoami()
	case "docs":
		a.cmdDocs(ctx)
	case "upload":
		a.cmdUpload(ctx, args)
	case "select":
		a.cmdSelect(ctx, args)
	case "chat":
		a.cmdChat(ctx)
	default:
		usage()
	}
}

func (a *app) cmdRegister(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	u := fs.String("u", "", "username")
	e := fs.String("e", "", "email")
	p := fs.String("p", "", "password")
	_ = fs.Parse(args)
	if err := a.gw.Register(ctx, *u, *e, *p); err != nil {
		fail(a, err)
	}
	fmt.Println("account created, you can log in now")
}

func (a *app) cmdLogin(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	u := fs.String("u", "", "username")
	p := fs.String("p", "", "password")
	_ = fs.Parse(args)
	creds, err := a.gw.Login(ctx, *u, *p)
	if err != nil {
		fail(a, err)
	}
	if err := a.store.Save(creds); err != nil {
		fail(a, err)
	}
	fmt.Println("ok")
}

func (a *app) cmdWhoami() {
	tok := a.store.Current()
	if tok == "" {
		fmt.Println("not logged in")
		return
	}
	sub, exp := tokenInfo(tok)
	if sub == "" {
		fmt.Println("logged in (opaque token)")
		return
	}
	fmt.Printf("user %s", sub)
	if !exp.IsZero() {
		fmt.Printf(", token expires %s", exp.UTC().Format(time.RFC3339))
	}
	fmt.Println()
}

// tokenInfo extracts subject and expiry from a JWT without validating it;
// expiry is advisory here, the server is the authority.
func tokenInfo(tok string) (string, time.Time) {
	var claims jwt.RegisteredClaims
	_, _ = jwt.ParseWithClaims(tok, &claims, func(*jwt.Token) (any, error) { return nil, nil },
		jwt.WithoutClaimsValidation(),
	)
	var exp time.Time
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	return claims.Subject, exp
}

func (a *app) cmdDocs(ctx context.Context) {
	docs, err := a.reg.List(ctx)
	if err != nil {
		fail(a, err)
	}
	if len(docs) == 0 {
		fmt.Println("no documents uploaded yet")
		return
	}
	printDocs(docs)
}

func (a *app) cmdUpload(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	file := fs.String("file", "", "PDF file path")
	title := fs.String("title", "", "document title (defaults to file name)")
	desc := fs.String("desc", "", "description")
	_ = fs.Parse(args)
	if *file == "" {
		fmt.Fprintln(os.Stderr, "need -file")
		os.Exit(1)
	}
	res, err := a.reg.Upload(ctx, *file, *title, *desc)
	if err != nil {
		fail(a, err)
	}
	fmt.Println(res.Msg)
}

func (a *app) cmdSelect(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("select", flag.ExitOnError)
	id := fs.Int64("id", 0, "document id")
	_ = fs.Parse(args)
	if *id == 0 {
		fmt.Fprintln(os.Stderr, "need -id")
		os.Exit(1)
	}
	docs, err := a.reg.List(ctx)
	if err != nil {
		fail(a, err)
	}
	for _, d := range docs {
		if d.ID == *id {
			if err := a.reg.Select(d); err != nil {
				fail(a, err)
			}
			fmt.Printf("selected %q\n", d.Title)
			return
		}
	}
	fmt.Fprintf(os.Stderr, "no document with id %d\n", *id)
	os.Exit(1)
}

func printDocs(docs []model.Document) {
	type row struct {
		ID       int64  `json:"id"`
		Title    string `json:"title"`
		Uploaded string `json:"uploaded"`
	}
	rows := make([]row, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, row{ID: d.ID, Title: d.Title, Uploaded: d.UploadedAt.UTC().Format("2006-01-02")})
	}
	printJSON(rows)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// fail reports err and exits. Session expiry additionally clears saved
// credentials and points the user at the login flow, mirroring the forced
// redirect a browser client would perform.
func fail(a *app, err error) {
	if route, ok := nav.Resolve(err); ok {
		_ = a.store.Clear()
		fmt.Fprintf(os.Stderr, "session expired, please log in again (dc login) [%s]\n", route)
		os.Exit(1)
	}
	var reqErr *errs.RequestError
	if errors.As(err, &reqErr) {
		fmt.Fprintln(os.Stderr, reqErr.Error())
		os.Exit(1)
	}
	if errors.Is(err, errs.ErrTransport) {
		fmt.Fprintln(os.Stderr, "network error, please try again:", err)
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
