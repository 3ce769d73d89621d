package retrieval

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/mediquery/mediquery/internal/domain"
	"github.com/mediquery/mediquery/internal/domain/query"
	"github.com/mediquery/mediquery/internal/domain/role"
	"github.com/mediquery/mediquery/internal/domain/search/request"
	"github.com/mediquery/mediquery/internal/domain/search/result"
)

type fakeProcessor struct {
	proc query.Processed
	err  error
}

func (f *fakeProcessor) Process(text string, r role.Role) (query.Processed, error) {
	if f.err != nil {
		return query.Processed{}, f.err
	}
	proc := f.proc
	proc.OriginalQuery = text
	return proc, nil
}

type fakeEngine struct {
	gotProc      query.Processed
	gotEmbedding []float32
	outcome      result.Outcome
	err          error
}

func (f *fakeEngine) Search(
	_ context.Context, proc query.Processed, _ request.Request, embedding []float32,
) (result.Outcome, error) {
	f.gotProc = proc
	f.gotEmbedding = embedding
	return f.outcome, f.err
}

type fakeEmbedder struct {
	embedding []float32
	err       error
	calls     int
}

func (f *fakeEmbedder) Embed(context.Context, string) (domain.EmbeddingResult, error) {
	f.calls++
	if f.err != nil {
		return domain.EmbeddingResult{}, f.err
	}
	return domain.EmbeddingResult{Embedding: f.embedding}, nil
}

func mustRequest(t *testing.T, st request.SearchType) request.Request {
	t.Helper()
	req, err := request.New("diabetes", role.Clinician, request.Filters{}, nil, 10, 20, st)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return req
}

func TestSearchAssemblesResponse(t *testing.T) {
	proc := query.Processed{
		ProcessedQuery: "diabetes diabetes mellitus",
		Intent:         query.Intent{Primary: query.IntentSearchPatients},
		Suggestions:    []string{"show recent lab results"},
	}
	engine := &fakeEngine{outcome: result.Outcome{
		Results:      []result.Result{{ID: "p1", Type: result.TypePatient}},
		TotalResults: 37,
		QueryTimeMS:  12,
		Aggregations: map[string][]result.Bucket{"types": {{Key: "patient", Count: 37}}},
	}}
	svc := New(&fakeProcessor{proc: proc}, engine, &fakeEmbedder{embedding: []float32{0.1, 0.2}})

	resp, err := svc.Search(context.Background(), mustRequest(t, request.Hybrid))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if resp.TotalResults != 37 || resp.QueryTime != 12 {
		t.Errorf("response = %+v", resp)
	}
	if !reflect.DeepEqual(resp.Suggestions, []string{"show recent lab results"}) {
		t.Errorf("suggestions = %v", resp.Suggestions)
	}
	if resp.ConversationalResponse == "" {
		t.Error("missing conversational response")
	}
	if !reflect.DeepEqual(engine.gotEmbedding, []float32{0.1, 0.2}) {
		t.Errorf("embedding = %v", engine.gotEmbedding)
	}
	if engine.gotProc.ProcessedQuery != "diabetes diabetes mellitus" {
		t.Errorf("processed query = %q", engine.gotProc.ProcessedQuery)
	}

	want := result.Pagination{Offset: 20, Limit: 10, HasMore: true}
	if resp.Pagination != want {
		t.Errorf("pagination = %+v, want %+v", resp.Pagination, want)
	}
}

func TestSearchSkipsEmbeddingForKeyword(t *testing.T) {
	embedder := &fakeEmbedder{embedding: []float32{0.1}}
	engine := &fakeEngine{}
	svc := New(&fakeProcessor{}, engine, embedder)

	if _, err := svc.Search(context.Background(), mustRequest(t, request.Keyword)); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if embedder.calls != 0 {
		t.Errorf("embedder called %d times for keyword search", embedder.calls)
	}
	if engine.gotEmbedding != nil {
		t.Errorf("embedding = %v, want nil", engine.gotEmbedding)
	}
}

func TestSearchLexicalFallbackWhenEmbedderUnavailable(t *testing.T) {
	engine := &fakeEngine{}
	svc := New(&fakeProcessor{}, engine, nil)

	if _, err := svc.Search(context.Background(), mustRequest(t, request.Hybrid)); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if engine.gotEmbedding != nil {
		t.Errorf("embedding = %v, want nil without a provider", engine.gotEmbedding)
	}
}

func TestSearchLexicalFallbackOnEmbedderError(t *testing.T) {
	engine := &fakeEngine{}
	embedder := &fakeEmbedder{err: errors.New("provider exploded")}
	svc := New(&fakeProcessor{}, engine, embedder)

	if _, err := svc.Search(context.Background(), mustRequest(t, request.Semantic)); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if engine.gotEmbedding != nil {
		t.Errorf("embedding = %v, want nil on provider error", engine.gotEmbedding)
	}
}

func TestSearchProcessorError(t *testing.T) {
	svc := New(&fakeProcessor{err: domain.ErrEmptyQuery}, &fakeEngine{}, nil)

	_, err := svc.Search(context.Background(), mustRequest(t, request.Hybrid))
	if !errors.Is(err, domain.ErrEmptyQuery) {
		t.Errorf("error = %v, want ErrEmptyQuery", err)
	}
}

func TestSearchEngineError(t *testing.T) {
	engine := &fakeEngine{err: domain.NewSearchFailure("down")}
	svc := New(&fakeProcessor{}, engine, nil)

	_, err := svc.Search(context.Background(), mustRequest(t, request.Hybrid))
	if !errors.Is(err, domain.ErrEngineUnavailable) {
		t.Errorf("error = %v, want ErrEngineUnavailable", err)
	}
}
