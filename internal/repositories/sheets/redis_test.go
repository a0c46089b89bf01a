package sheets

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/suite"

	sheeterr "github.com/lozrp/sheetd/internal/errors"
)

type RedisMockTestSuite struct {
	suite.Suite
	mock redismock.ClientMock
	repo Repository
}

func (s *RedisMockTestSuite) SetupTest() {
	client, mock := redismock.NewClientMock()
	s.mock = mock
	s.repo = NewRedisRepository(&RedisRepoConfig{Client: client})
}

func (s *RedisMockTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisMockTestSuite(t *testing.T) {
	suite.Run(t, new(RedisMockTestSuite))
}

func (s *RedisMockTestSuite) TestSave_HappyPath() {
	ctx := context.Background()

	// SavedAt is stamped at write time, so match the payload loosely
	s.mock.Regexp().ExpectSet("sheet:test-id", `.*"name":"Link".*`, 0).SetVal("OK")
	s.mock.ExpectSAdd("sheets:index", "test-id").SetVal(1)

	err := s.repo.Save(ctx, "test-id", map[string]string{"name": "Link"})
	s.NoError(err)
}

func (s *RedisMockTestSuite) TestSave_WriteFailureIsQuotaClass() {
	ctx := context.Background()

	s.mock.Regexp().ExpectSet("sheet:test-id", `.*`, 0).SetErr(context.DeadlineExceeded)

	err := s.repo.Save(ctx, "test-id", map[string]string{"name": "Link"})
	s.Error(err)
	s.True(sheeterr.IsQuotaExceeded(err))
}

func (s *RedisMockTestSuite) TestSave_RequiresID() {
	err := s.repo.Save(context.Background(), "", map[string]string{})
	s.Error(err)
	s.Equal(sheeterr.CodeInvalidArgument, sheeterr.GetCode(err))
}

func (s *RedisMockTestSuite) TestSave_RequiresData() {
	err := s.repo.Save(context.Background(), "test-id", nil)
	s.Error(err)
	s.Equal(sheeterr.CodeInvalidArgument, sheeterr.GetCode(err))
}

func (s *RedisMockTestSuite) TestLoad_HappyPath() {
	ctx := context.Background()

	record := Record{
		SavedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Data:    map[string]string{"name": "Link", "stamina_max": "10"},
	}
	payload, err := json.Marshal(record)
	s.Require().NoError(err)

	s.mock.ExpectGet("sheet:test-id").SetVal(string(payload))

	loaded, err := s.repo.Load(ctx, "test-id")
	s.NoError(err)
	s.Equal("Link", loaded.Data["name"])
	s.Equal("10", loaded.Data["stamina_max"])
	s.True(record.SavedAt.Equal(loaded.SavedAt))
}

func (s *RedisMockTestSuite) TestLoad_NotFound() {
	s.mock.ExpectGet("sheet:missing").RedisNil()

	_, err := s.repo.Load(context.Background(), "missing")
	s.Error(err)
	s.True(sheeterr.IsNotFound(err))
}

func (s *RedisMockTestSuite) TestLoad_CorruptedRecord() {
	s.mock.ExpectGet("sheet:test-id").SetVal("{not json")

	_, err := s.repo.Load(context.Background(), "test-id")
	s.Error(err)
	s.True(sheeterr.IsCorruptedSave(err))
}

func (s *RedisMockTestSuite) TestLoad_NilDataBecomesEmptyMap() {
	s.mock.ExpectGet("sheet:test-id").SetVal(`{"savedAt":"2024-05-01T12:00:00Z"}`)

	loaded, err := s.repo.Load(context.Background(), "test-id")
	s.NoError(err)
	s.NotNil(loaded.Data)
	s.Empty(loaded.Data)
}

func (s *RedisMockTestSuite) TestSavePortrait() {
	s.mock.ExpectSet("sheet:test-id:portrait", "data:image/png;base64,xyz", 0).SetVal("OK")

	err := s.repo.SavePortrait(context.Background(), "test-id", "data:image/png;base64,xyz")
	s.NoError(err)
}

func (s *RedisMockTestSuite) TestSavePortrait_EmptyClearsKey() {
	s.mock.ExpectDel("sheet:test-id:portrait").SetVal(1)

	err := s.repo.SavePortrait(context.Background(), "test-id", "")
	s.NoError(err)
}

func (s *RedisMockTestSuite) TestLoadPortrait_AbsentIsEmpty() {
	s.mock.ExpectGet("sheet:test-id:portrait").RedisNil()

	portrait, err := s.repo.LoadPortrait(context.Background(), "test-id")
	s.NoError(err)
	s.Equal("", portrait)
}

func (s *RedisMockTestSuite) TestList() {
	s.mock.ExpectSMembers("sheets:index").SetVal([]string{"a", "b"})

	ids, err := s.repo.List(context.Background())
	s.NoError(err)
	s.ElementsMatch([]string{"a", "b"}, ids)
}

func (s *RedisMockTestSuite) TestDelete() {
	s.mock.ExpectDel("sheet:test-id").SetVal(1)
	s.mock.ExpectDel("sheet:test-id:portrait").SetVal(0)
	s.mock.ExpectSRem("sheets:index", "test-id").SetVal(1)

	err := s.repo.Delete(context.Background(), "test-id")
	s.NoError(err)
}
