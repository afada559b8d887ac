// Package seed loads catalog repositories from YAML and upserts them.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	catalogModel "github.com/festy23/fixthisbug/internal/catalog/model"
)

//go:embed repositories.yaml
var defaultData []byte

// File is the top-level layout of a seed document.
type File struct {
	Repositories []catalogModel.UpsertRequest `yaml:"repositories"`
}

// Upserter is the part of the catalog service the loader needs.
type Upserter interface {
	UpsertRepository(ctx context.Context, req *catalogModel.UpsertRequest) (*catalogModel.Repository, bool, error)
}

// Result counts what Apply did.
type Result struct {
	Created int
	Updated int
	Issues  int
}

// Default returns the bundled sample catalog.
func Default() (*File, error) {
	return Decode(bytes.NewReader(defaultData))
}

// LoadFile reads a seed document from path.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}

// Decode parses a seed document. Unknown keys are rejected.
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		if err == io.EOF {
			return &file, nil
		}
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return &file, nil
}

// Apply upserts every repository in order and stops at the first failure.
func Apply(ctx context.Context, svc Upserter, file *File, logger *zap.SugaredLogger) (Result, error) {
	var res Result
	for i := range file.Repositories {
		req := &file.Repositories[i]
		repo, created, err := svc.UpsertRepository(ctx, req)
		if err != nil {
			return res, fmt.Errorf("seed %s/%s: %w", req.Owner, req.Name, err)
		}
		if created {
			res.Created++
		} else {
			res.Updated++
		}
		res.Issues += len(repo.Issues)
		logger.Debugw("seeded repository", "github_id", repo.GitHubID, "created", created)
	}
	return res, nil
}
