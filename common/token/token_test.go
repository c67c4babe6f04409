package token_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"wxgate.app/wxgate/common/token"
)

var _ = Describe("Manager", func() {
	var manager *token.Manager

	BeforeEach(func() {
		manager = token.NewManager("test-secret", time.Hour)
	})

	It("issues a bearer token that verifies to the same claims", func() {
		t, err := manager.Issue(42, "alice", "alice@example.com")
		Expect(err).NotTo(HaveOccurred())
		Expect(t.TokenType).To(Equal("bearer"))
		Expect(t.ExpireAt).To(BeTemporally("~", time.Now().Add(time.Hour), 5*time.Second))

		claims, err := manager.Verify(t.AccessToken)
		Expect(err).NotTo(HaveOccurred())
		Expect(claims.ID).To(Equal(int64(42)))
		Expect(claims.Username).To(Equal("alice"))
		Expect(claims.Email).To(Equal("alice@example.com"))
	})

	It("rejects a token signed with a different secret", func() {
		other := token.NewManager("other-secret", time.Hour)
		t, err := other.Issue(42, "alice", "alice@example.com")
		Expect(err).NotTo(HaveOccurred())

		_, err = manager.Verify(t.AccessToken)
		Expect(err).To(MatchError(token.ErrInvalidToken))
	})

	It("rejects an expired token", func() {
		expired := token.NewManager("test-secret", -time.Minute)
		t, err := expired.Issue(42, "alice", "alice@example.com")
		Expect(err).NotTo(HaveOccurred())

		_, err = manager.Verify(t.AccessToken)
		Expect(err).To(MatchError(token.ErrInvalidToken))
	})

	It("rejects garbage input", func() {
		_, err := manager.Verify("not-a-token")
		Expect(err).To(MatchError(token.ErrInvalidToken))
	})
})
