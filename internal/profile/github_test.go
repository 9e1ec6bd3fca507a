package profile

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListRepos(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/ann/repos" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("per_page") != "5" || q.Get("sort") != "created:asc" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"name":"devlink","html_url":"https://github.com/ann/devlink","stargazers_count":3}]`))
	}))
	defer upstream.Close()

	client := NewGitHubClient("")
	client.baseURL = upstream.URL

	repos, err := client.ListRepos(context.Background(), "ann")
	if err != nil {
		t.Fatalf("ListRepos: %v", err)
	}
	if len(repos) != 1 {
		t.Fatalf("expected 1 repo, got %d", len(repos))
	}
	if repos[0].Name != "devlink" || repos[0].Stargazers != 3 {
		t.Fatalf("unexpected repo: %+v", repos[0])
	}
}

func TestListReposNotFound(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer upstream.Close()

	client := NewGitHubClient("")
	client.baseURL = upstream.URL

	_, err := client.ListRepos(context.Background(), "nobody")
	if !errors.Is(err, ErrGitHubNotFound) {
		t.Fatalf("expected ErrGitHubNotFound, got %v", err)
	}
}

func TestListReposSendsToken(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer gh-token" {
			t.Fatalf("missing auth header, got %q", r.Header.Get("Authorization"))
		}
		w.Write([]byte(`[]`))
	}))
	defer upstream.Close()

	client := NewGitHubClient("gh-token")
	client.baseURL = upstream.URL

	if _, err := client.ListRepos(context.Background(), "ann"); err != nil {
		t.Fatalf("ListRepos: %v", err)
	}
}

func TestListReposUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	client := NewGitHubClient("")
	client.baseURL = upstream.URL

	_, err := client.ListRepos(context.Background(), "ann")
	if err == nil || errors.Is(err, ErrGitHubNotFound) {
		t.Fatalf("expected generic upstream error, got %v", err)
	}
}
