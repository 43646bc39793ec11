package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("HookableBase", func() {
	var (
		mockCtrl *gomock.Controller
		hookable *HookableBase
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		hookable = new(HookableBase)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should invoke hooks in registration order", func() {
		hook1 := NewMockHook(mockCtrl)
		hook2 := NewMockHook(mockCtrl)
		ctx := HookCtx{Domain: hookable, Pos: HookPosBeforeEvent}

		first := hook1.EXPECT().Func(ctx)
		hook2.EXPECT().Func(ctx).After(first)

		hookable.AcceptHook(hook1)
		hookable.AcceptHook(hook2)
		hookable.InvokeHook(ctx)

		Expect(hookable.NumHooks()).To(Equal(2))
	})

	It("should reject duplicated hooks", func() {
		hook := NewMockHook(mockCtrl)
		hookable.AcceptHook(hook)

		Expect(func() { hookable.AcceptHook(hook) }).To(Panic())
	})
})
