package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// Mock UserRepository for testing
type mockUserRepository struct {
	accounts    map[string]*Account // email -> account
	nextID      int64
	countError  error
	createError error
	getError    error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		accounts: make(map[string]*Account),
		nextID:   1,
	}
}

func (m *mockUserRepository) seed(email, password string, roleID int64) *Account {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	account := &Account{
		ID:           m.nextID,
		Name:         "Seeded User",
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       roleID,
	}
	m.nextID++
	m.accounts[email] = account
	return account
}

func (m *mockUserRepository) GetByEmail(email string) (*Account, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	return m.accounts[email], nil
}

func (m *mockUserRepository) CountUsers() (int64, error) {
	if m.countError != nil {
		return 0, m.countError
	}
	return int64(len(m.accounts)), nil
}

func (m *mockUserRepository) Create(account *Account) error {
	if m.createError != nil {
		return m.createError
	}
	account.ID = m.nextID
	m.nextID++
	m.accounts[account.Email] = account
	return nil
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service  *Service
		mockRepo *mockUserRepository
		tokenGen *JWTTokenGenerator
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		tokenGen = NewJWTTokenGenerator("test-access-secret", "test-refresh-secret")
		service = NewService(mockRepo, tokenGen)
	})

	ginkgo.Describe("Register", func() {
		ginkgo.Context("when the store is empty", func() {
			ginkgo.It("should make the first registered user an admin", func() {
				roleID, err := service.Register(RegisterDTO{
					Name:     "First User",
					Email:    "first@example.com",
					Password: "password123",
				})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(roleID).To(gomega.Equal(RoleAdmin))
				gomega.Expect(mockRepo.accounts["first@example.com"].RoleID).To(gomega.Equal(RoleAdmin))
			})
		})

		ginkgo.Context("when users already exist", func() {
			ginkgo.BeforeEach(func() {
				mockRepo.seed("admin@example.com", "password123", RoleAdmin)
			})

			ginkgo.It("should register subsequent users as members", func() {
				roleID, err := service.Register(RegisterDTO{
					Name:     "Second User",
					Email:    "second@example.com",
					Password: "password123",
				})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(roleID).To(gomega.Equal(RoleMember))
			})

			ginkgo.It("should reject an already registered email", func() {
				_, err := service.Register(RegisterDTO{
					Name:     "Duplicate",
					Email:    "admin@example.com",
					Password: "password123",
				})

				gomega.Expect(err).To(gomega.Equal(ErrEmailTaken))
			})
		})

		ginkgo.Context("when validation fails", func() {
			ginkgo.It("should reject a short password", func() {
				_, err := service.Register(RegisterDTO{
					Name:     "User",
					Email:    "user@example.com",
					Password: "short",
				})

				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err.Error()).To(gomega.ContainSubstring("at least 8 characters"))
			})

			ginkgo.It("should reject a malformed email", func() {
				_, err := service.Register(RegisterDTO{
					Name:     "User",
					Email:    "not-an-email",
					Password: "password123",
				})

				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err.Error()).To(gomega.ContainSubstring("invalid email"))
			})

			ginkgo.It("should not create an account on validation failure", func() {
				_, err := service.Register(RegisterDTO{Email: "user@example.com"})

				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(mockRepo.accounts).To(gomega.BeEmpty())
			})
		})
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.BeforeEach(func() {
			account := mockRepo.seed("user@example.com", "correct_password", RoleMember)
			companyID := int64(7)
			account.CompanyID = &companyID
		})

		ginkgo.Context("with valid credentials", func() {
			ginkgo.It("should return a token pair and user info", func() {
				result, err := service.Authenticate(LoginDTO{
					Email:    "user@example.com",
					Password: "correct_password",
				})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.AccessToken).ToNot(gomega.BeEmpty())
				gomega.Expect(result.RefreshToken).ToNot(gomega.BeEmpty())
				gomega.Expect(result.User.Email).To(gomega.Equal("user@example.com"))
				gomega.Expect(result.User.RoleID).To(gomega.Equal(RoleMember))
				gomega.Expect(result.User.CompanyID).ToNot(gomega.BeNil())
			})

			ginkgo.It("should embed role and affiliation in the access token", func() {
				result, err := service.Authenticate(LoginDTO{
					Email:    "user@example.com",
					Password: "correct_password",
				})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := tokenGen.ValidateToken(result.AccessToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.RoleID).To(gomega.Equal(RoleMember))
				gomega.Expect(claims.CompanyID).ToNot(gomega.BeNil())
				gomega.Expect(*claims.CompanyID).To(gomega.Equal(int64(7)))
			})
		})

		ginkgo.Context("with bad credentials", func() {
			ginkgo.It("should reject a wrong password", func() {
				result, err := service.Authenticate(LoginDTO{
					Email:    "user@example.com",
					Password: "wrong_password",
				})

				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
				gomega.Expect(result).To(gomega.BeNil())
			})

			ginkgo.It("should reject an unknown email", func() {
				result, err := service.Authenticate(LoginDTO{
					Email:    "nobody@example.com",
					Password: "correct_password",
				})

				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
				gomega.Expect(result).To(gomega.BeNil())
			})
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		ginkgo.It("should issue a new pair whose access token carries no role", func() {
			refreshToken, err := tokenGen.GenerateRefreshToken("42", "user@example.com")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			tokens, err := service.RefreshTokens(refreshToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(tokens.AccessToken).ToNot(gomega.BeEmpty())
			gomega.Expect(tokens.RefreshToken).ToNot(gomega.BeEmpty())

			claims, err := tokenGen.ValidateToken(tokens.AccessToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.UserID).To(gomega.Equal("42"))
			gomega.Expect(claims.RoleID).To(gomega.BeZero())
			gomega.Expect(claims.CompanyID).To(gomega.BeNil())
		})

		ginkgo.It("should reject a garbage token", func() {
			_, err := service.RefreshTokens("not-a-token")
			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})
	})

	ginkgo.Describe("JWTTokenGenerator", func() {
		ginkgo.It("should reject an expired token", func() {
			shortGen := &JWTTokenGenerator{
				AccessTokenSecret:  []byte("test-access-secret"),
				RefreshTokenSecret: []byte("test-refresh-secret"),
				AccessTokenTTL:     -time.Minute,
				RefreshTokenTTL:    24 * time.Hour,
			}
			token, err := shortGen.GenerateAccessToken("1", "user@example.com", RoleMember, nil)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = shortGen.ValidateToken(token)
			gomega.Expect(err).To(gomega.Equal(ErrTokenExpired))
		})

		ginkgo.It("should reject a token signed with a different secret", func() {
			otherGen := NewJWTTokenGenerator("other-secret", "other-refresh")
			token, err := otherGen.GenerateAccessToken("1", "user@example.com", RoleMember, nil)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = tokenGen.ValidateToken(token)
			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})
	})

	ginkgo.Describe("when the repository fails", func() {
		ginkgo.It("should surface count errors on register", func() {
			mockRepo.countError = errors.New("database down")

			_, err := service.Register(RegisterDTO{
				Name:     "User",
				Email:    "user@example.com",
				Password: "password123",
			})

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(err.Error()).To(gomega.ContainSubstring("database down"))
		})
	})
})
