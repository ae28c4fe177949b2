package stream_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/foxlet/provfs/pkg/config"
	"github.com/foxlet/provfs/pkg/logg"
	"github.com/foxlet/provfs/pkg/mocks"
	"github.com/foxlet/provfs/pkg/provider"
	"github.com/foxlet/provfs/pkg/stream"
	"github.com/foxlet/provfs/pkg/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

func TestValidatorSuite(t *testing.T) {
	suite.Run(t, new(ValidatorSuite))
}

type ValidatorSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	provider *mocks.MockProvider
	mtime    time.Time
}

func (s *ValidatorSuite) SetupTest() {
	config.SetGConfig(&config.ReaderConfig{})
	logg.InitLogger()
	s.mockCtrl = gomock.NewController(s.T())
	s.provider = mocks.NewMockProvider(s.mockCtrl)
	s.mtime = time.Date(2023, time.May, 12, 8, 30, 0, 0, time.UTC)
}

func (s *ValidatorSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *ValidatorSuite) expectMetadata(size int64, mtime time.Time) {
	s.provider.EXPECT().GetMetadata(&provider.GetMetadataRequest{Path: "foo"}).
		Return(&provider.GetMetadataReply{
			Info: provider.FileInfo{Size: size, Mtime: mtime},
		}, nil)
}

func (s *ValidatorSuite) TestMatchingExpectation() {
	s.expectMetadata(1024, s.mtime)

	info, err := stream.Validate(s.provider, "foo", s.mtime)
	s.Nil(err)
	s.Equal(int64(1024), info.Size)
	s.True(info.Mtime.Equal(s.mtime))
}

// time.Time values in different locations still compare equal when they name
// the same instant.
func (s *ValidatorSuite) TestMatchingExpectationDifferentLocation() {
	s.expectMetadata(1024, s.mtime)

	local := s.mtime.In(time.FixedZone("UTC+8", 8*3600))
	_, err := stream.Validate(s.provider, "foo", local)
	s.Nil(err)
}

func (s *ValidatorSuite) TestMismatchedExpectation() {
	s.expectMetadata(1024, s.mtime)

	_, err := stream.Validate(s.provider, "foo", s.mtime.Add(time.Nanosecond))
	s.Equal(types.ErrChanged, err)
}

func (s *ValidatorSuite) TestZeroExpectationDisablesCheck() {
	s.expectMetadata(1024, s.mtime)

	info, err := stream.Validate(s.provider, "foo", time.Time{})
	s.Nil(err)
	s.Equal(int64(1024), info.Size)
}

func (s *ValidatorSuite) TestNotFound() {
	s.provider.EXPECT().GetMetadata(&provider.GetMetadataRequest{Path: "foo"}).
		Return(nil, types.ErrNotFound)

	_, err := stream.Validate(s.provider, "foo", s.mtime)
	s.Equal(types.ErrNotFound, err)
}

func (s *ValidatorSuite) TestProviderErrorPassthrough() {
	fakeErr := fmt.Errorf("fake err")
	s.provider.EXPECT().GetMetadata(&provider.GetMetadataRequest{Path: "foo"}).
		Return(nil, fakeErr)

	_, err := stream.Validate(s.provider, "foo", s.mtime)
	s.Equal(fakeErr, err)
}
