package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Rohang10/saas-copilot/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// JSONLoader reads knowledge base articles from *.json files in a directory.
// Each file holds an array of {"id", "title", "body"} objects.
type JSONLoader struct {
	dir string
}

func NewJSONLoader(dir string) *JSONLoader {
	return &JSONLoader{dir: dir}
}

// Load returns the documents of every file in lexical file order.
// A missing directory yields no documents.
func (l *JSONLoader) Load(ctx context.Context) ([]entity.Document, error) {
	files, err := filepath.Glob(filepath.Join(l.dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list document files: %w", err)
	}
	sort.Strings(files)

	var docs []entity.Document
	seen := make(map[string]string)

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}

		var fileDocs []entity.Document
		if err := json.Unmarshal(data, &fileDocs); err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", entity.ErrInvalidDocument, file, err)
		}

		for i, doc := range fileDocs {
			doc.ID = strings.TrimSpace(doc.ID)
			if doc.ID == "" {
				return nil, fmt.Errorf("%w: %s entry %d has no id", entity.ErrInvalidDocument, file, i)
			}
			// chunk ids derive from document ids, so they must be unique
			if prev, ok := seen[doc.ID]; ok {
				return nil, fmt.Errorf("%w: duplicate id %q in %s and %s", entity.ErrInvalidDocument, doc.ID, prev, file)
			}
			seen[doc.ID] = file
			docs = append(docs, doc)
		}

		ctxzap.Debug(ctx, "document file loaded",
			zap.String("file", file),
			zap.Int("document_count", len(fileDocs)),
		)
	}

	return docs, nil
}
