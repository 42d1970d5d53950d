package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/conduithq/conduit/pkg/logger"
	"github.com/conduithq/conduit/pkg/memory"
)

func newTestServer() (*Server, *memory.Store) {
	tmpDir, err := os.MkdirTemp("", "api-test-*")
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(os.RemoveAll, tmpDir)

	store, err := memory.NewStore(tmpDir, logger.Nop())
	Expect(err).NotTo(HaveOccurred())

	server, err := NewServer(Config{
		ListenAddr:     ":0",
		ChatModel:      "gpt-3.5-turbo",
		EmbeddingModel: "text-embedding-ada-002",
		EmbeddingDims:  10,
	}, store, logger.Nop())
	Expect(err).NotTo(HaveOccurred())

	return server, store
}

func jsonRequest(method, target string, body any) *http.Request {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeBody[T any](resp *http.Response) T {
	defer resp.Body.Close()
	var out T
	Expect(json.NewDecoder(resp.Body).Decode(&out)).To(Succeed())
	return out
}

var _ = Describe("Memory handlers", func() {
	var (
		server *Server
		store  *memory.Store
	)

	BeforeEach(func() {
		server, store = newTestServer()
	})

	Describe("CORS", func() {
		It("allows cross-origin requests", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/memories", nil)
			req.Header.Set("Origin", "http://localhost:5173")

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Header.Get("Access-Control-Allow-Origin")).To(Equal("*"))
		})

		It("answers preflight requests", func() {
			req := httptest.NewRequest(http.MethodOptions, "/api/memories", nil)
			req.Header.Set("Origin", "http://localhost:5173")
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))
			Expect(resp.Header.Get("Access-Control-Allow-Origin")).To(Equal("*"))
			Expect(resp.Header.Get("Access-Control-Allow-Methods")).To(ContainSubstring(http.MethodPost))
		})
	})

	Describe("GET /ping", func() {
		It("returns pong", func() {
			resp, err := server.app.Test(jsonRequest(http.MethodGet, "/ping", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(decodeBody[string](resp)).To(Equal("pong"))
		})
	})

	Describe("POST /api/memories", func() {
		It("creates a memory and returns 201", func() {
			resp, err := server.app.Test(jsonRequest(http.MethodPost, "/api/memories", CreateMemoryRequest{
				Title:   "Shopping List",
				Content: "milk and eggs",
				Tags:    []string{"errands"},
			}))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			created := decodeBody[memory.Memory](resp)
			Expect(created.ID).NotTo(BeEmpty())
			Expect(created.Title).To(Equal("Shopping List"))

			stored, err := store.Get(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Content).To(Equal("milk and eggs"))
		})

		It("rejects a missing title", func() {
			resp, err := server.app.Test(jsonRequest(http.MethodPost, "/api/memories", CreateMemoryRequest{
				Content: "no title here",
			}))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("rejects a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/memories", bytes.NewReader([]byte("{not json")))
			req.Header.Set("Content-Type", "application/json")

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /api/memories", func() {
		It("returns every stored memory", func() {
			Expect(store.Save(memory.New("One", "first", nil))).To(Succeed())
			Expect(store.Save(memory.New("Two", "second", nil))).To(Succeed())

			resp, err := server.app.Test(jsonRequest(http.MethodGet, "/api/memories", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			memories := decodeBody[[]memory.Memory](resp)
			Expect(memories).To(HaveLen(2))
		})
	})

	Describe("GET /api/memories/:id", func() {
		It("returns the memory when it exists", func() {
			m := memory.New("Recipes", "pasta carbonara", []string{"food"})
			Expect(store.Save(m)).To(Succeed())

			resp, err := server.app.Test(jsonRequest(http.MethodGet, "/api/memories/"+m.ID, nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			got := decodeBody[memory.Memory](resp)
			Expect(got.ID).To(Equal(m.ID))
			Expect(got.Tags).To(ConsistOf("food"))
		})

		It("returns 404 for an unknown id", func() {
			resp, err := server.app.Test(jsonRequest(http.MethodGet, "/api/memories/no-such-id", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	Describe("DELETE /api/memories/:id", func() {
		It("deletes and returns 204", func() {
			m := memory.New("Ephemeral", "soon gone", nil)
			Expect(store.Save(m)).To(Succeed())

			resp, err := server.app.Test(jsonRequest(http.MethodDelete, "/api/memories/"+m.ID, nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))

			_, err = store.Get(m.ID)
			Expect(err).To(BeAssignableToTypeOf(memory.NotFoundError{}))
		})

		It("returns 404 when the memory does not exist", func() {
			resp, err := server.app.Test(jsonRequest(http.MethodDelete, "/api/memories/no-such-id", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	Describe("POST /api/memories/search", func() {
		BeforeEach(func() {
			Expect(store.Save(memory.New("Shopping List", "milk and eggs", []string{"errands"}))).To(Succeed())
			Expect(store.Save(memory.New("Work Notes", "quarterly planning", []string{"work"}))).To(Succeed())
		})

		It("matches by substring query", func() {
			resp, err := server.app.Test(jsonRequest(http.MethodPost, "/api/memories/search", SearchRequest{Query: "milk"}))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			results := decodeBody[[]memory.Memory](resp)
			Expect(results).To(HaveLen(1))
			Expect(results[0].Title).To(Equal("Shopping List"))
		})

		It("matches by exact tag when one is given", func() {
			resp, err := server.app.Test(jsonRequest(http.MethodPost, "/api/memories/search", SearchRequest{Tag: "work"}))
			Expect(err).NotTo(HaveOccurred())

			results := decodeBody[[]memory.Memory](resp)
			Expect(results).To(HaveLen(1))
			Expect(results[0].Title).To(Equal("Work Notes"))
		})

		It("returns an empty list when nothing matches", func() {
			resp, err := server.app.Test(jsonRequest(http.MethodPost, "/api/memories/search", SearchRequest{Query: "zzz"}))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
		})
	})
})
