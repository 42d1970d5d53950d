package api

import (
	"math"
	"net/http"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/conduithq/conduit/pkg/memory"
)

var _ = Describe("OpenAI-compatible endpoints", func() {
	var (
		server *Server
		store  *memory.Store
	)

	BeforeEach(func() {
		server, store = newTestServer()
	})

	Describe("GET /v1/models", func() {
		It("advertises the chat and embedding models", func() {
			resp, err := server.app.Test(jsonRequest(http.MethodGet, "/v1/models", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			models := decodeBody[ModelList](resp)
			Expect(models.Object).To(Equal("list"))
			Expect(models.Data).To(HaveLen(2))
			Expect(models.Data[0].ID).To(Equal("gpt-3.5-turbo"))
			Expect(models.Data[1].ID).To(Equal("text-embedding-ada-002"))
			for _, m := range models.Data {
				Expect(m.OwnedBy).To(Equal("conduit"))
			}
		})
	})

	Describe("/v1/memories aliases", func() {
		It("serves the same memories as /api/memories", func() {
			resp, err := server.app.Test(jsonRequest(http.MethodPost, "/v1/memories", CreateMemoryRequest{
				Title:   "Shopping List",
				Content: "milk and eggs",
			}))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))
			created := decodeBody[memory.Memory](resp)

			resp, err = server.app.Test(jsonRequest(http.MethodGet, "/v1/memories", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(decodeBody[[]memory.Memory](resp)).To(HaveLen(1))

			resp, err = server.app.Test(jsonRequest(http.MethodGet, "/v1/memories/"+created.ID, nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			resp, err = server.app.Test(jsonRequest(http.MethodDelete, "/v1/memories/"+created.ID, nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))

			_, err = store.Get(created.ID)
			Expect(err).To(BeAssignableToTypeOf(memory.NotFoundError{}))
		})
	})

	Describe("POST /v1/chat/completions", func() {
		It("echoes the last message and lists stored memory titles", func() {
			Expect(store.Save(memory.New("Shopping List", "milk", nil))).To(Succeed())

			resp, err := server.app.Test(jsonRequest(http.MethodPost, "/v1/chat/completions", ChatCompletionRequest{
				Model: "gpt-3.5-turbo",
				Messages: []ChatMessage{
					{Role: "user", Content: "What do I need to buy?"},
				},
			}))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			completion := decodeBody[ChatCompletionResponse](resp)
			Expect(completion.ID).To(HavePrefix("chatcmpl-"))
			Expect(completion.Object).To(Equal("chat.completion"))
			Expect(completion.Model).To(Equal("gpt-3.5-turbo"))
			Expect(completion.Choices).To(HaveLen(1))
			Expect(completion.Choices[0].FinishReason).To(Equal("stop"))

			content := completion.Choices[0].Message.Content
			Expect(content).To(ContainSubstring("What do I need to buy?"))
			Expect(content).To(ContainSubstring("- Shopping List"))
			Expect(completion.Usage.TotalTokens).To(Equal(200))
		})

		It("defaults to a greeting when no messages are sent", func() {
			resp, err := server.app.Test(jsonRequest(http.MethodPost, "/v1/chat/completions", ChatCompletionRequest{
				Model: "gpt-3.5-turbo",
			}))
			Expect(err).NotTo(HaveOccurred())

			completion := decodeBody[ChatCompletionResponse](resp)
			Expect(completion.Choices[0].Message.Content).To(ContainSubstring("Hello"))
		})
	})

	Describe("POST /v1/embeddings", func() {
		It("returns one deterministic vector per input", func() {
			resp, err := server.app.Test(jsonRequest(http.MethodPost, "/v1/embeddings", EmbeddingRequest{
				Model: "text-embedding-ada-002",
				Input: []string{"hello", "hello world"},
			}))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			embeddings := decodeBody[EmbeddingResponse](resp)
			Expect(embeddings.Object).To(Equal("list"))
			Expect(embeddings.Data).To(HaveLen(2))
			Expect(embeddings.Data[0].Index).To(Equal(0))
			Expect(embeddings.Data[1].Index).To(Equal(1))
			Expect(embeddings.Data[0].Embedding).To(HaveLen(10))

			// The vector depends only on input length and dimension index.
			want := float32(math.Sin(0.1 + float64(len("hello"))*0.01))
			Expect(embeddings.Data[0].Embedding[1]).To(BeNumerically("~", want, 1e-6))
		})

		It("reports usage as a quarter of the input length", func() {
			text := strings.Repeat("a", 40)
			resp, err := server.app.Test(jsonRequest(http.MethodPost, "/v1/embeddings", EmbeddingRequest{
				Model: "text-embedding-ada-002",
				Input: []string{text},
			}))
			Expect(err).NotTo(HaveOccurred())

			embeddings := decodeBody[EmbeddingResponse](resp)
			Expect(embeddings.Usage.PromptTokens).To(Equal(10))
			Expect(embeddings.Usage.TotalTokens).To(Equal(10))
		})
	})
})
