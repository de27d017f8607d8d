package storage_test

import (
	"bytes"
	"log/slog"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ulasan/company-review/internal/storage"
)

func TestStorage(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Storage Module Suite")
}

// makeFileHeader builds a real multipart.FileHeader by round-tripping a
// form through the multipart reader.
func makeFileHeader(filename string, content []byte) *multipart.FileHeader {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	Expect(err).ToNot(HaveOccurred())
	_, err = part.Write(content)
	Expect(err).ToNot(HaveOccurred())
	Expect(writer.Close()).To(Succeed())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content)) + 10240)
	Expect(err).ToNot(HaveOccurred())
	return form.File["file"][0]
}

var _ = Describe("Store", func() {
	var (
		store   *storage.Store
		baseDir string
	)

	BeforeEach(func() {
		var err error
		baseDir, err = os.MkdirTemp("", "uploads-test-*")
		Expect(err).ToNot(HaveOccurred())

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		store = storage.NewStore(baseDir, "/uploads", 1024, logger)
	})

	AfterEach(func() {
		Expect(os.RemoveAll(baseDir)).To(Succeed())
	})

	Describe("Save", func() {
		It("should persist an allowed document and return its public path", func() {
			header := makeFileHeader("resume.pdf", []byte("fake pdf content"))

			stored, err := store.Save("resumes", header)

			Expect(err).ToNot(HaveOccurred())
			Expect(stored.Path).To(HavePrefix("/uploads/resumes/"))
			Expect(stored.Path).To(HaveSuffix(".pdf"))
			Expect(stored.OriginalName).To(Equal("resume.pdf"))
			Expect(stored.Size).To(Equal(int64(len("fake pdf content"))))

			onDisk := filepath.Join(baseDir, "resumes", filepath.Base(stored.Path))
			Expect(onDisk).To(BeAnExistingFile())
		})

		It("should give concurrent uploads of the same filename distinct names", func() {
			first, err := store.Save("resumes", makeFileHeader("cv.pdf", []byte("one")))
			Expect(err).ToNot(HaveOccurred())
			second, err := store.Save("resumes", makeFileHeader("cv.pdf", []byte("two")))
			Expect(err).ToNot(HaveOccurred())

			Expect(first.Path).ToNot(Equal(second.Path))
		})

		It("should reject an extension outside the allowlist", func() {
			header := makeFileHeader("malware.exe", []byte("nope"))

			stored, err := store.Save("resumes", header)

			Expect(err).To(Equal(storage.ErrUnsupportedType))
			Expect(stored).To(BeNil())
		})

		It("should reject a file over the size cap", func() {
			header := makeFileHeader("big.pdf", bytes.Repeat([]byte("x"), 2048))

			stored, err := store.Save("resumes", header)

			Expect(err).To(Equal(storage.ErrFileTooLarge))
			Expect(stored).To(BeNil())
		})

		It("should match extensions case-insensitively", func() {
			header := makeFileHeader("PHOTO.JPG", []byte("image bytes"))

			stored, err := store.Save("company", header)

			Expect(err).ToNot(HaveOccurred())
			Expect(strings.ToLower(stored.Path)).To(HaveSuffix(".jpg"))
		})
	})

	Describe("AbsoluteURL", func() {
		It("should prepend scheme and host to a relative path", func() {
			req := httptest.NewRequest("GET", "http://api.example.com/api/v1/applications/1", nil)

			url := storage.AbsoluteURL(req, "/uploads/resumes/123-abc.pdf")

			Expect(url).To(Equal("http://api.example.com/uploads/resumes/123-abc.pdf"))
		})

		It("should honor X-Forwarded-Proto from a TLS-terminating proxy", func() {
			req := httptest.NewRequest("GET", "http://api.example.com/", nil)
			req.Header.Set("X-Forwarded-Proto", "https")

			url := storage.AbsoluteURL(req, "uploads/resumes/123-abc.pdf")

			Expect(url).To(Equal("https://api.example.com/uploads/resumes/123-abc.pdf"))
		})

		It("should pass already absolute URLs through untouched", func() {
			req := httptest.NewRequest("GET", "http://api.example.com/", nil)

			external := "https://cdn.example.com/file.pdf"
			Expect(storage.AbsoluteURL(req, external)).To(Equal(external))
		})

		It("should leave an empty path empty", func() {
			req := httptest.NewRequest("GET", "http://api.example.com/", nil)

			Expect(storage.AbsoluteURL(req, "")).To(BeEmpty())
		})
	})
})
