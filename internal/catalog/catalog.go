package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/rehearse/internal/errors"
)

//go:embed questions.yaml
var embeddedQuestions []byte

// file is the on-disk shape of a catalog document.
type file struct {
	Questions []Question `yaml:"questions"`
}

// Catalog is a read-only, ordered collection of questions. All accessors
// return copies; the catalog never changes after construction.
type Catalog struct {
	questions []Question
	byID      map[string]int
}

var (
	defaultCatalog    *Catalog
	defaultCatalogErr error
	defaultOnce       sync.Once
)

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = Load(bytes.NewReader(embeddedQuestions))
	})
	return defaultCatalog, defaultCatalogErr
}

// New builds a catalog from questions, preserving their order. Every entry
// is validated and ids must be unique.
func New(questions []Question) (*Catalog, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	c := &Catalog{
		questions: make([]Question, 0, len(questions)),
		byID:      make(map[string]int, len(questions)),
	}
	for _, q := range questions {
		if err := validate.Struct(q); err != nil {
			return nil, errors.NewCatalogInvalidError(q.ID, err)
		}
		if _, dup := c.byID[q.ID]; dup {
			return nil, errors.NewCatalogDuplicateIDError(q.ID)
		}
		c.byID[q.ID] = len(c.questions)
		c.questions = append(c.questions, q.Clone())
	}
	return c, nil
}

// Load decodes a YAML catalog document.
func Load(r io.Reader) (*Catalog, error) {
	var doc file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCatalogLoad, "decode catalog", err).
			WithSuggestion("Check the YAML syntax of the catalog file")
	}
	return New(doc.Questions)
}

// LoadFile reads a YAML catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileNotFoundError(path)
		}
		return nil, errors.NewFileReadError(path, err)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return c, nil
}

// ByType returns every question whose type equals t (any type when t is
// TypeMixed) and whose difficulty equals d (any difficulty when d is
// DifficultyAny), in catalog order.
func (c *Catalog) ByType(t Type, d Difficulty) []Question {
	var out []Question
	for _, q := range c.questions {
		if t != TypeMixed && q.Type != t {
			continue
		}
		if d != DifficultyAny && q.Difficulty != d {
			continue
		}
		out = append(out, q.Clone())
	}
	return out
}

// ByKeyword returns every question whose category or text contains any of
// the keywords, case-insensitively, in catalog order. Blank keywords are
// ignored.
func (c *Catalog) ByKeyword(keywords ...string) []Question {
	needles := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			needles = append(needles, k)
		}
	}
	if len(needles) == 0 {
		return nil
	}

	var out []Question
	for _, q := range c.questions {
		category := strings.ToLower(q.Category)
		text := strings.ToLower(q.Text)
		for _, n := range needles {
			if strings.Contains(category, n) || strings.Contains(text, n) {
				out = append(out, q.Clone())
				break
			}
		}
	}
	return out
}

// Get returns the question with the given id.
func (c *Catalog) Get(id string) (Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Question{}, false
	}
	return c.questions[i].Clone(), true
}

// All returns every question in catalog order.
func (c *Catalog) All() []Question {
	return c.ByType(TypeMixed, DifficultyAny)
}

// Len returns the number of questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// Fingerprint returns the blake3 digest of the catalog's JSON encoding.
// Two catalogs with the same questions in the same order share a
// fingerprint.
func (c *Catalog) Fingerprint() (string, error) {
	canonical, err := json.Marshal(c.questions)
	if err != nil {
		return "", fmt.Errorf("canonicalize catalog: %w", err)
	}

	hasher := blake3.New()
	if _, err := hasher.Write(canonical); err != nil {
		return "", fmt.Errorf("hash catalog: %w", err)
	}

	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}
