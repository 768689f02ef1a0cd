package uploads

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type StorageTestSuite struct {
	suite.Suite
	storage *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageTestSuite))
}

func (s *StorageTestSuite) SetupTest() {
	storage, err := New(filepath.Join(s.T().TempDir(), "uploads"))
	s.Require().NoError(err)
	s.storage = storage
}

func (s *StorageTestSuite) fileHeader(filename string, content []byte) *multipart.FileHeader {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("avatar", filename)
	s.Require().NoError(err)
	_, err = part.Write(content)
	s.Require().NoError(err)
	s.Require().NoError(w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	s.Require().NoError(err)
	return form.File["avatar"][0]
}

func (s *StorageTestSuite) TestSaveAvatar() {
	url, err := s.storage.SaveAvatar(s.fileHeader("me.png", pngHeader))
	s.Require().NoError(err)

	s.True(strings.HasPrefix(url, DefaultURLPrefix+"/"))
	s.Contains(url, "-avatar-")
	s.True(strings.HasSuffix(url, ".png"))

	stored, readErr := os.ReadFile(filepath.Join(s.storage.Dir(), filepath.Base(url)))
	s.Require().NoError(readErr)
	s.Equal(pngHeader, stored)

	s.Require().NoError(s.storage.Remove(url))
	_, statErr := os.Stat(filepath.Join(s.storage.Dir(), filepath.Base(url)))
	s.True(os.IsNotExist(statErr))
}

func (s *StorageTestSuite) TestSaveAvatar_UnsupportedType() {
	_, err := s.storage.SaveAvatar(s.fileHeader("me.png", []byte("just some text")))
	s.Require().ErrorIs(err, ErrUnsupportedType)
}

func (s *StorageTestSuite) TestSaveAvatar_TooLarge() {
	s.storage.maxSize = 4
	_, err := s.storage.SaveAvatar(s.fileHeader("me.png", pngHeader))
	s.Require().ErrorIs(err, ErrTooLarge)
}

func (s *StorageTestSuite) TestRemove_OutsideStorage() {
	s.NoError(s.storage.Remove("https://cdn.example.com/avatar.png"))
	s.NoError(s.storage.Remove(DefaultURLPrefix + "/../secret"))
}
