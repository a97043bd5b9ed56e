package extract

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/abhisek/holavoca/internal/llm"
)

func pageImage() llm.Image {
	return llm.Image{MIMEType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}
}

func TestExtractAssignsIDsAndSource(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"entries":[
			{"word":"abril","grammar":"m.","meaning":"April","example":""},
			{"word":"niño/a","grammar":"m./f.","meaning":"child","example":"El niño juega."}
		]}`),
	})

	got, err := New(mock, DefaultConfig()).Extract(context.Background(), pageImage())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}

	ids := map[string]bool{}
	for _, imp := range got {
		if imp.ID == "" {
			t.Error("entry missing id")
		}
		if ids[imp.ID] {
			t.Errorf("duplicate id %q", imp.ID)
		}
		ids[imp.ID] = true
		if imp.Entry.Source != "imported" {
			t.Errorf("Source = %q, want imported", imp.Entry.Source)
		}
		if imp.Level != 0 || imp.Mastery != 0 {
			t.Errorf("fresh entry has non-zero state: %+v", imp)
		}
	}
	if got[1].Entry.Word != "niño/a" || got[1].Entry.Example == "" {
		t.Errorf("entry fields lost: %+v", got[1].Entry)
	}
}

func TestExtractSkipsBlankAndDuplicateWords(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"entries":[
			{"word":"casa","grammar":"f.","meaning":"house","example":""},
			{"word":"Casa","grammar":"f.","meaning":"house (dup)","example":""},
			{"word":"","grammar":"","meaning":"ghost","example":""},
			{"word":"sol","grammar":"m.","meaning":"","example":""}
		]}`),
	})

	got, err := New(mock, DefaultConfig()).Extract(context.Background(), pageImage())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(got) != 1 || got[0].Entry.Word != "casa" {
		t.Errorf("got %+v, want only casa", got)
	}
}

func TestExtractSendsImageWithRequest(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"entries":[]}`),
	})

	if _, err := New(mock, DefaultConfig()).Extract(context.Background(), pageImage()); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema != VocabSchema {
		t.Error("request missing vocab schema")
	}
	if len(req.Messages) != 1 || len(req.Messages[0].Images) != 1 {
		t.Fatalf("request missing image: %+v", req.Messages)
	}
	if req.Messages[0].Images[0].MIMEType != "image/png" {
		t.Errorf("image mime = %q", req.Messages[0].Images[0].MIMEType)
	}
}

func TestExtractRejectsMalformedResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`not json`),
	})
	if _, err := New(mock, DefaultConfig()).Extract(context.Background(), pageImage()); err == nil {
		t.Error("expected parse error")
	}
}
