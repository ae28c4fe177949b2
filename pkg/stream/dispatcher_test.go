package stream_test

import (
	"fmt"
	"testing"

	"github.com/foxlet/provfs/pkg/config"
	"github.com/foxlet/provfs/pkg/logg"
	"github.com/foxlet/provfs/pkg/mocks"
	"github.com/foxlet/provfs/pkg/provider"
	"github.com/foxlet/provfs/pkg/stream"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherSuite))
}

type DispatcherSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	provider *mocks.MockProvider
}

func (s *DispatcherSuite) SetupTest() {
	config.SetGConfig(&config.ReaderConfig{})
	logg.InitLogger()
	s.mockCtrl = gomock.NewController(s.T())
	s.provider = mocks.NewMockProvider(s.mockCtrl)
}

func (s *DispatcherSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *DispatcherSuite) TestFillBasic() {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	s.provider.EXPECT().ReadRange(&provider.ReadRangeRequest{
		Path:   "foo",
		Offset: 0,
		Length: 8,
	}).Return(&provider.ReadRangeReply{Data: data}, nil)

	d := stream.NewDispatcher(s.provider, "foo")
	buf := make([]byte, 8)
	n, err := d.FillFrom(0, 8, 100, buf)
	s.Nil(err)
	s.Equal(8, n)
	s.Equal(data, buf)
}

// A short provider reply makes the dispatcher re-issue the range read at an
// advanced offset until the request is satisfied.
func (s *DispatcherSuite) TestFillPartialReplies() {
	s.provider.EXPECT().ReadRange(&provider.ReadRangeRequest{
		Path:   "foo",
		Offset: 0,
		Length: 8,
	}).Return(&provider.ReadRangeReply{Data: []byte{1, 2, 3}}, nil)

	s.provider.EXPECT().ReadRange(&provider.ReadRangeRequest{
		Path:   "foo",
		Offset: 3,
		Length: 5,
	}).Return(&provider.ReadRangeReply{Data: []byte{4, 5, 6, 7, 8}}, nil)

	d := stream.NewDispatcher(s.provider, "foo")
	buf := make([]byte, 8)
	n, err := d.FillFrom(0, 8, 100, buf)
	s.Nil(err)
	s.Equal(8, n)
	s.Equal([]byte{1, 2, 3, 4, 5, 6, 7, 8}, buf)
}

// Requests wider than the configured chunk size are split before they reach
// the provider.
func (s *DispatcherSuite) TestFillSplitsAtChunkSize() {
	config.SetGConfig(&config.ReaderConfig{ChunkSize: 4})

	s.provider.EXPECT().ReadRange(&provider.ReadRangeRequest{
		Path:   "foo",
		Offset: 0,
		Length: 4,
	}).Return(&provider.ReadRangeReply{Data: []byte{1, 2, 3, 4}}, nil)

	s.provider.EXPECT().ReadRange(&provider.ReadRangeRequest{
		Path:   "foo",
		Offset: 4,
		Length: 2,
	}).Return(&provider.ReadRangeReply{Data: []byte{5, 6}}, nil)

	d := stream.NewDispatcher(s.provider, "foo")
	buf := make([]byte, 6)
	n, err := d.FillFrom(0, 6, 100, buf)
	s.Nil(err)
	s.Equal(6, n)
	s.Equal([]byte{1, 2, 3, 4, 5, 6}, buf)
}

// Reads are clamped against the remaining file size before the provider is
// contacted.
func (s *DispatcherSuite) TestFillClampsToSize() {
	s.provider.EXPECT().ReadRange(&provider.ReadRangeRequest{
		Path:   "foo",
		Offset: 6,
		Length: 4,
	}).Return(&provider.ReadRangeReply{Data: []byte{7, 8, 9, 10}}, nil)

	d := stream.NewDispatcher(s.provider, "foo")
	buf := make([]byte, 64)
	n, err := d.FillFrom(6, 64, 10, buf)
	s.Nil(err)
	s.Equal(4, n)
	s.Equal([]byte{7, 8, 9, 10}, buf[:4])
}

// At or past end-of-file nothing is requested from the provider at all.
func (s *DispatcherSuite) TestFillAtEOF() {
	d := stream.NewDispatcher(s.provider, "foo")
	buf := make([]byte, 8)

	n, err := d.FillFrom(10, 8, 10, buf)
	s.Nil(err)
	s.Equal(0, n)

	n, err = d.FillFrom(20, 8, 10, buf)
	s.Nil(err)
	s.Equal(0, n)
}

// An empty reply signals end-of-data inside the range; the dispatcher stops
// with what it has.
func (s *DispatcherSuite) TestFillStopsOnEmptyReply() {
	s.provider.EXPECT().ReadRange(&provider.ReadRangeRequest{
		Path:   "foo",
		Offset: 0,
		Length: 8,
	}).Return(&provider.ReadRangeReply{Data: []byte{1, 2, 3}}, nil)

	s.provider.EXPECT().ReadRange(&provider.ReadRangeRequest{
		Path:   "foo",
		Offset: 3,
		Length: 5,
	}).Return(&provider.ReadRangeReply{}, nil)

	d := stream.NewDispatcher(s.provider, "foo")
	buf := make([]byte, 8)
	n, err := d.FillFrom(0, 8, 100, buf)
	s.Nil(err)
	s.Equal(3, n)
	s.Equal([]byte{1, 2, 3}, buf[:3])
}

func (s *DispatcherSuite) TestFillProviderError() {
	fakeErr := fmt.Errorf("fake err")
	s.provider.EXPECT().ReadRange(&provider.ReadRangeRequest{
		Path:   "foo",
		Offset: 0,
		Length: 8,
	}).Return(nil, fakeErr)

	d := stream.NewDispatcher(s.provider, "foo")
	buf := make([]byte, 8)
	n, err := d.FillFrom(0, 8, 100, buf)
	s.Equal(fakeErr, err)
	s.Equal(0, n)
}
