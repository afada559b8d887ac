package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	catalogModel "github.com/festy23/fixthisbug/internal/catalog/model"
)

type mockUpserter struct {
	mock.Mock
}

func (m *mockUpserter) UpsertRepository(
	ctx context.Context,
	req *catalogModel.UpsertRequest,
) (*catalogModel.Repository, bool, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*catalogModel.Repository), args.Bool(1), args.Error(2)
}

func TestDefault(t *testing.T) {
	file, err := Default()
	require.NoError(t, err)
	require.Len(t, file.Repositories, 6)

	first := file.Repositories[0]
	assert.Equal(t, "wp-graphql", first.Name)
	assert.Equal(t, 2925, first.Stars)
	assert.Equal(t, []string{"wordpress", "graphql", "api"}, first.Tags)
	require.Len(t, first.Issues, 2)
	assert.Equal(t, 942, first.Issues[0].Number)
	require.NotNil(t, first.Issues[0].CreatedAt)
	assert.Equal(t, 2019, first.Issues[0].CreatedAt.Year())
	assert.Equal(t, "Feature: Add location to menu idType's", first.Issues[1].Title)
}

func TestDecode(t *testing.T) {
	t.Run("unknown keys are rejected", func(t *testing.T) {
		_, err := Decode(strings.NewReader("repositories:\n  - name: x\n    stargazers: 5\n"))
		assert.ErrorContains(t, err, "decode seed file")
	})

	t.Run("empty document", func(t *testing.T) {
		file, err := Decode(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, file.Repositories)
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
repositories:
  - name: widgets
    owner: acme
    description: Widgets
    language: Go
    url: https://github.com/acme/widgets
`), 0o600))

	file, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, file.Repositories, 1)
	assert.Equal(t, "acme", file.Repositories[0].Owner)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "open seed file")
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	file := &File{Repositories: []catalogModel.UpsertRequest{
		{Name: "a", Owner: "o"},
		{Name: "b", Owner: "o"},
	}}

	t.Run("counts created and updated", func(t *testing.T) {
		svc := new(mockUpserter)
		svc.On("UpsertRepository", ctx, &file.Repositories[0]).
			Return(&catalogModel.Repository{GitHubID: "o/a", Issues: catalogModel.Issues{{}, {}}}, true, nil)
		svc.On("UpsertRepository", ctx, &file.Repositories[1]).
			Return(&catalogModel.Repository{GitHubID: "o/b", Issues: catalogModel.Issues{{}}}, false, nil)

		res, err := Apply(ctx, svc, file, zap.NewNop().Sugar())
		require.NoError(t, err)
		assert.Equal(t, Result{Created: 1, Updated: 1, Issues: 3}, res)
	})

	t.Run("stops on first error", func(t *testing.T) {
		svc := new(mockUpserter)
		svc.On("UpsertRepository", ctx, mock.Anything).
			Return(nil, false, catalogModel.ErrMissingFields).Once()

		res, err := Apply(ctx, svc, file, zap.NewNop().Sugar())
		assert.True(t, errors.Is(err, catalogModel.ErrMissingFields))
		assert.Contains(t, err.Error(), "seed o/a")
		assert.Equal(t, Result{}, res)
		svc.AssertNumberOfCalls(t, "UpsertRepository", 1)
	})
}
