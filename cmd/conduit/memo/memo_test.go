package memocmder_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	memocmder "github.com/conduithq/conduit/cmd/conduit/memo"
	"github.com/conduithq/conduit/pkg/logger"
	"github.com/conduithq/conduit/pkg/memory"
)

var _ = Describe("NewMemoCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := memocmder.NewMemoCmd()
		Expect(cmd.Use).To(Equal("memo"))
	})

	It("has new, show, list, search, and rm subcommands", func() {
		cmd := memocmder.NewMemoCmd()
		cmds := cmd.Commands()
		subcommands := make([]string, 0, len(cmds))
		for _, sub := range cmds {
			subcommands = append(subcommands, sub.Name())
		}
		Expect(subcommands).To(ContainElements("new", "show", "list", "search", "rm"))
	})
})

var _ = Describe("Memo command execution", func() {
	var (
		storeDir string
		store    *memory.Store
	)

	BeforeEach(func() {
		var err error
		storeDir, err = os.MkdirTemp("", "conduit-memo-test-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, storeDir)

		store, err = memory.NewStore(storeDir, logger.Nop())
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("new subcommand", func() {
		It("creates a memory file in the store directory", func() {
			cmd := memocmder.NewMemoCmd()
			cmd.SetArgs([]string{
				"new", "Shopping List",
				"--content", "milk and eggs",
				"--tags", "errands,food",
				"--store", storeDir,
			})
			Expect(cmd.Execute()).To(Succeed())

			memories, err := store.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(memories).To(HaveLen(1))
			Expect(memories[0].Title).To(Equal("Shopping List"))
			Expect(memories[0].Tags).To(ConsistOf("errands", "food"))
		})

		It("requires a title argument", func() {
			cmd := memocmder.NewMemoCmd()
			cmd.SetArgs([]string{"new", "--store", storeDir})
			Expect(cmd.Execute()).NotTo(Succeed())
		})
	})

	Describe("show subcommand", func() {
		It("fails for an unknown id", func() {
			cmd := memocmder.NewMemoCmd()
			cmd.SetArgs([]string{"show", "no-such-id", "--store", storeDir})
			Expect(cmd.Execute()).NotTo(Succeed())
		})

		It("prints the raw document with --raw", func() {
			m := memory.New("Recipes", "pasta carbonara", []string{"food"})
			Expect(store.Save(m)).To(Succeed())

			cmd := memocmder.NewMemoCmd()
			cmd.SetArgs([]string{"show", m.ID, "--raw", "--store", storeDir})
			Expect(cmd.Execute()).To(Succeed())
		})
	})

	Describe("list subcommand", func() {
		It("lists without error on an empty store", func() {
			cmd := memocmder.NewMemoCmd()
			cmd.SetArgs([]string{"list", "--store", storeDir})
			Expect(cmd.Execute()).To(Succeed())
		})
	})

	Describe("search subcommand", func() {
		It("requires a query or a tag", func() {
			cmd := memocmder.NewMemoCmd()
			cmd.SetArgs([]string{"search", "--store", storeDir})
			Expect(cmd.Execute()).NotTo(Succeed())
		})

		It("searches by tag", func() {
			Expect(store.Save(memory.New("Work Notes", "planning", []string{"work"}))).To(Succeed())

			cmd := memocmder.NewMemoCmd()
			cmd.SetArgs([]string{"search", "--tag", "work", "--store", storeDir})
			Expect(cmd.Execute()).To(Succeed())
		})
	})

	Describe("rm subcommand", func() {
		It("deletes the memory file", func() {
			m := memory.New("Ephemeral", "soon gone", nil)
			Expect(store.Save(m)).To(Succeed())

			cmd := memocmder.NewMemoCmd()
			cmd.SetArgs([]string{"rm", m.ID, "--store", storeDir})
			Expect(cmd.Execute()).To(Succeed())

			_, err := store.Get(m.ID)
			Expect(err).To(BeAssignableToTypeOf(memory.NotFoundError{}))
		})

		It("fails for an unknown id", func() {
			cmd := memocmder.NewMemoCmd()
			cmd.SetArgs([]string{"rm", "no-such-id", "--store", storeDir})
			Expect(cmd.Execute()).NotTo(Succeed())
		})
	})
})
