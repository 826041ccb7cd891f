package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/hexmatch-go/internal/model"
	"github.com/mcoot/hexmatch-go/internal/storage/memory"
	"github.com/mcoot/hexmatch-go/internal/testutil"
)

type report struct {
	leaderboard string
	score       int64
}

type recordingReporter struct {
	reports []report
	err     error
}

func (r *recordingReporter) ReportScore(ctx context.Context, leaderboard string, score int64) error {
	if r.err != nil {
		return r.err
	}
	r.reports = append(r.reports, report{leaderboard, score})
	return nil
}

type ServiceSuite struct {
	suite.Suite
	storage  *memory.Storage
	reporter *recordingReporter
	service  *Service
	ctx      context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.reporter = &recordingReporter{}
	s.service = New(s.storage, s.reporter, testutil.NopLogger())
	s.ctx = context.Background()
}

// Counter tests

func (s *ServiceSuite) TestIncrementAndGet() {
	v, err := s.service.Increment(s.ctx, "piece_value_2", 1)
	s.Require().NoError(err)
	s.Equal(int64(1), v)

	_, err = s.service.Increment(s.ctx, "piece_value_2", 1)
	s.Require().NoError(err)

	v, err = s.service.Get(s.ctx, "piece_value_2")
	s.Require().NoError(err)
	s.Equal(int64(2), v)
}

func (s *ServiceSuite) TestSet() {
	s.Require().NoError(s.service.Set(s.ctx, model.StatPieceCollected, 9))

	v, err := s.service.Get(s.ctx, model.StatPieceCollected)
	s.Require().NoError(err)
	s.Equal(int64(9), v)
}

// All tests

func (s *ServiceSuite) TestAllIncludesKnownCountersAtZero() {
	entries, err := s.service.All(s.ctx)
	s.Require().NoError(err)

	s.Len(entries, len(model.StatKeys()))
	for _, e := range entries {
		s.Equal(int64(0), e.Value)
		s.NotEqual(e.Key, e.Name, "known key %s should have a display name", e.Key)
	}
}

func (s *ServiceSuite) TestAllIncludesUnknownCountersSorted() {
	_, err := s.service.Increment(s.ctx, "aaa_custom", 3)
	s.Require().NoError(err)
	_, err = s.service.Increment(s.ctx, model.StatGamesPlayed, 2)
	s.Require().NoError(err)

	entries, err := s.service.All(s.ctx)
	s.Require().NoError(err)

	s.Require().Len(entries, len(model.StatKeys())+1)
	s.Equal(Entry{Key: "aaa_custom", Name: "aaa_custom", Value: 3}, entries[0])

	for i := 1; i < len(entries); i++ {
		s.Less(entries[i-1].Key, entries[i].Key)
	}
	for _, e := range entries {
		if e.Key == model.StatGamesPlayed {
			s.Equal(int64(2), e.Value)
			s.Equal("Games Played", e.Name)
		}
	}
}

// RecordScore tests

func (s *ServiceSuite) TestRecordScoreKeepsBest() {
	s.Require().NoError(s.service.RecordScore(s.ctx, model.LevelMoat, 500))
	s.Require().NoError(s.service.RecordScore(s.ctx, model.LevelMoat, 200))
	s.Require().NoError(s.service.RecordScore(s.ctx, model.LevelPit, 800))

	moat, err := s.service.Get(s.ctx, "highscore_moat")
	s.Require().NoError(err)
	s.Equal(int64(500), moat)

	pit, err := s.service.Get(s.ctx, "highscore_pit")
	s.Require().NoError(err)
	s.Equal(int64(800), pit)

	overall, err := s.service.Get(s.ctx, model.StatHighScore)
	s.Require().NoError(err)
	s.Equal(int64(800), overall)
}

// ReportLeaderboards tests

func (s *ServiceSuite) TestReportLeaderboards() {
	s.Require().NoError(s.service.RecordScore(s.ctx, model.LevelHexagon, 1200))

	s.Require().NoError(s.service.ReportLeaderboards(s.ctx))

	s.Equal([]report{
		{"hexmatch.highscore", 1200},
		{"hexmatch.highscore.welcome", 0},
		{"hexmatch.highscore.hexagon", 1200},
		{"hexmatch.highscore.moat", 0},
		{"hexmatch.highscore.pit", 0},
	}, s.reporter.reports)
}

func (s *ServiceSuite) TestReportLeaderboardsPropagatesReporterError() {
	s.reporter.err = errors.New("leaderboard unavailable")
	s.Error(s.service.ReportLeaderboards(s.ctx))
}

func (s *ServiceSuite) TestLogReporterNeverFails() {
	reporter := NewLogReporter(testutil.NopLogger())
	s.NoError(reporter.ReportScore(s.ctx, model.LeaderboardHighScore, 10))
}
