package httpapi

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/custodia-labs/cvkit/internal/core/domain"
	"github.com/custodia-labs/cvkit/internal/extractors"
)

const (
	defaultListLimit = 20
	maxListLimit     = 200
)

// ListResponse is the body of GET /cvs.
type ListResponse struct {
	CVs    []domain.CV `json:"cvs"`
	Count  int         `json:"count"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":               "ok",
		"supported_mime_types": s.parser.SupportedMIMETypes(),
		"max_file_size":        s.maxSize,
	})
}

// parse decodes an upload without storing it.
func (s *Server) parse(c *fiber.Ctx) error {
	doc, err := s.readUpload(c)
	if err != nil {
		return writeError(c, err)
	}

	parsed, err := s.parser.Parse(c.UserContext(), doc)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(parsed)
}

// ingest parses an upload and stores it.
func (s *Server) ingest(c *fiber.Ctx) error {
	doc, err := s.readUpload(c)
	if err != nil {
		return writeError(c, err)
	}

	cv, err := s.cvs.Ingest(c.UserContext(), doc)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cv)
}

func (s *Server) list(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c)

	cvs, err := s.cvs.List(c.UserContext(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	if cvs == nil {
		cvs = []domain.CV{}
	}
	return c.JSON(ListResponse{
		CVs:    cvs,
		Count:  len(cvs),
		Limit:  limit,
		Offset: offset,
	})
}

func (s *Server) get(c *fiber.Ctx) error {
	cv, err := s.cvs.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(cv)
}

func (s *Server) remove(c *fiber.Ctx) error {
	if err := s.cvs.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) analyse(c *fiber.Ctx) error {
	cv, err := s.cvs.Analyse(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(cv)
}

// readUpload reads the multipart "file" field into a SourceDocument.
// The MIME type comes from the "mime_type" form field, then the part header,
// then content sniffing.
func (s *Server) readUpload(c *fiber.Ctx) (*domain.SourceDocument, error) {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return nil, fmt.Errorf("%w: multipart field \"file\" is required", domain.ErrInvalidInput)
	}
	if fh.Size > s.maxSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d bytes", domain.ErrOversizeFile, fh.Size, s.maxSize)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open upload: %v", domain.ErrInvalidInput, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: read upload: %v", domain.ErrInvalidInput, err)
	}

	mimeType := strings.TrimSpace(c.FormValue("mime_type"))
	if mimeType == "" {
		mimeType = fh.Header.Get(fiber.HeaderContentType)
	}
	if mimeType == "" || domain.BaseMIMEType(mimeType) == fiber.MIMEOctetStream {
		mimeType = extractors.DetectMIMEType(fh.Filename, data)
	}

	return &domain.SourceDocument{
		Filename: fh.Filename,
		MIMEType: mimeType,
		Content:  data,
		Size:     fh.Size,
	}, nil
}

func parseLimitOffset(c *fiber.Ctx) (limit, offset int) {
	limit = defaultListLimit
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxListLimit {
			limit = n
		}
	}
	if v := strings.TrimSpace(c.Query("offset")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
