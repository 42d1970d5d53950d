package memory_test

import (
	"context"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/conduithq/conduit/pkg/memory"
)

var _ = Describe("Store.Watch", func() {
	var (
		tmpDir string
		store  *memory.Store
		ctx    context.Context
		cancel context.CancelFunc
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "memory-watch-test-*")
		Expect(err).NotTo(HaveOccurred())

		store, err = memory.NewStore(tmpDir, nil)
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel = context.WithCancel(context.Background())
	})

	AfterEach(func() {
		cancel()
		os.RemoveAll(tmpDir)
	})

	It("emits a saved event when a memory is written", func() {
		events, err := store.Watch(ctx)
		Expect(err).NotTo(HaveOccurred())

		m := memory.New("watched", "body", nil)
		Expect(store.Save(m)).To(Succeed())

		var ev memory.Event
		Eventually(events, 3*time.Second).Should(Receive(&ev))
		Expect(ev.ID).To(Equal(m.ID))
		Expect(ev.Op).To(Equal(memory.OpSaved))
	})

	It("emits a deleted event when a memory is removed", func() {
		m := memory.New("doomed", "body", nil)
		Expect(store.Save(m)).To(Succeed())

		events, err := store.Watch(ctx)
		Expect(err).NotTo(HaveOccurred())

		Expect(store.Delete(m.ID)).To(Succeed())

		Eventually(events, 3*time.Second).Should(Receive(WithTransform(
			func(ev memory.Event) memory.EventOp { return ev.Op },
			Equal(memory.OpDeleted),
		)))
	})

	It("closes the channel when the context is cancelled", func() {
		events, err := store.Watch(ctx)
		Expect(err).NotTo(HaveOccurred())

		cancel()

		Eventually(events, 3*time.Second).Should(BeClosed())
	})
})
