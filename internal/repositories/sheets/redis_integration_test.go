//go:build integration
// +build integration

package sheets_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	sheeterr "github.com/lozrp/sheetd/internal/errors"
	"github.com/lozrp/sheetd/internal/repositories/sheets"
	"github.com/lozrp/sheetd/internal/testutils"
)

type RedisIntegrationTestSuite struct {
	suite.Suite
	repo sheets.Repository
	ctx  context.Context
}

func (s *RedisIntegrationTestSuite) SetupTest() {
	client := testutils.CreateTestRedisClient(s.T(), nil)
	s.repo = sheets.NewRedisRepository(&sheets.RedisRepoConfig{Client: client})
	s.ctx = context.Background()
}

func TestRedisIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RedisIntegrationTestSuite))
}

func (s *RedisIntegrationTestSuite) TestFullLifecycle() {
	data := testutils.CreateTestSheetData("Link")

	s.NoError(s.repo.Save(s.ctx, "it-1", data))
	s.NoError(s.repo.SavePortrait(s.ctx, "it-1", "data:image/png;base64,xyz"))

	record, err := s.repo.Load(s.ctx, "it-1")
	s.NoError(err)
	s.Equal("Link", record.Data["name"])
	s.Equal("10", record.Data["stamina_max"])

	portrait, err := s.repo.LoadPortrait(s.ctx, "it-1")
	s.NoError(err)
	s.Equal("data:image/png;base64,xyz", portrait)

	ids, err := s.repo.List(s.ctx)
	s.NoError(err)
	s.Contains(ids, "it-1")

	s.NoError(s.repo.Delete(s.ctx, "it-1"))

	_, err = s.repo.Load(s.ctx, "it-1")
	s.True(sheeterr.IsNotFound(err))

	portrait, err = s.repo.LoadPortrait(s.ctx, "it-1")
	s.NoError(err)
	s.Equal("", portrait)
}

func (s *RedisIntegrationTestSuite) TestOverwriteKeepsLatest() {
	s.NoError(s.repo.Save(s.ctx, "it-2", map[string]string{"name": "First"}))
	s.NoError(s.repo.Save(s.ctx, "it-2", map[string]string{"name": "Second"}))

	record, err := s.repo.Load(s.ctx, "it-2")
	s.NoError(err)
	s.Equal("Second", record.Data["name"])

	ids, err := s.repo.List(s.ctx)
	s.NoError(err)

	count := 0
	for _, id := range ids {
		if id == "it-2" {
			count++
		}
	}
	s.Equal(1, count, "index should hold one entry per sheet")
}

// TestContainerLifecycle runs the same lifecycle against a disposable Redis
// container instead of a local instance
func TestContainerLifecycle(t *testing.T) {
	client := testutils.CreateRedisContainer(t)
	repo := sheets.NewRedisRepository(&sheets.RedisRepoConfig{Client: client})
	ctx := context.Background()

	if err := repo.Save(ctx, "ct-1", map[string]string{"name": "Zelda"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	record, err := repo.Load(ctx, "ct-1")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if record.Data["name"] != "Zelda" {
		t.Fatalf("unexpected name %q", record.Data["name"])
	}
}
