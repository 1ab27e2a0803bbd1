package api

import (
	"context"
	"net/http"
)

type queryRequest struct {
	QueryText string `json:"query_text"`
	Document  *int64 `json:"document"`
}

// QueryResult is the raw answer payload. The server populates either
// answer_text or response depending on its code path; Answer resolves that.
type QueryResult struct {
	AnswerText string `json:"answer_text"`
	Response   string `json:"response"`
	Source     string `json:"source"`
}

// FallbackAnswer is returned by Answer when the server supplied neither
// answer field.
const FallbackAnswer = "No response received"

// Answer resolves the answer with fixed precedence: answer_text, then
// response, then FallbackAnswer.
func (r QueryResult) Answer() string {
	if r.AnswerText != "" {
		return r.AnswerText
	}
	if r.Response != "" {
		return r.Response
	}
	return FallbackAnswer
}

// Query asks a question, optionally scoped to one document. A nil documentID
// marks a general query.
func (g *Gateway) Query(ctx context.Context, text string, documentID *int64) (QueryResult, error) {
	var res QueryResult
	if err := g.Do(ctx, http.MethodPost, "/api/query/", queryRequest{QueryText: text, Document: documentID}, &res); err != nil {
		return QueryResult{}, err
	}
	return res, nil
}
