package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ProtocolSuite struct {
	suite.Suite
}

func TestProtocolSuite(t *testing.T) {
	suite.Run(t, new(ProtocolSuite))
}

func (s *ProtocolSuite) TestEncodeDoubleEncodesData() {
	raw, err := Encode(KindTurn, TurnResponse{CurrentPlayer: 1})
	s.Require().NoError(err)

	var outer map[string]json.RawMessage
	s.Require().NoError(json.Unmarshal(raw, &outer))

	// data must be a JSON string containing JSON, not an embedded object
	var inner string
	s.Require().NoError(json.Unmarshal(outer["data"], &inner))
	s.JSONEq(`{"currentPlayer":1}`, inner)

	var id int
	s.Require().NoError(json.Unmarshal(outer["id"], &id))
	s.Equal(0, id)
}

func (s *ProtocolSuite) TestDecodeRoundTrip() {
	raw, err := Encode(KindReg, RegRequest{Name: "alice", Password: "s3cret"})
	s.Require().NoError(err)

	env, err := Decode(raw)
	s.Require().NoError(err)
	s.Equal(KindReg, env.Type)

	var req RegRequest
	s.Require().NoError(env.DecodeData(&req))
	s.Equal("alice", req.Name)
	s.Equal("s3cret", req.Password)
}

func (s *ProtocolSuite) TestDecodeClientFrame() {
	// Frame shape as produced by the reference client
	raw := []byte(`{"type":"add_user_to_room","data":"{\"indexRoom\":3}","id":0}`)

	env, err := Decode(raw)
	s.Require().NoError(err)
	s.Equal(KindAddUserToRoom, env.Type)

	var req AddUserToRoomRequest
	s.Require().NoError(env.DecodeData(&req))
	s.Equal(3, req.IndexRoom)
}

func (s *ProtocolSuite) TestDecodeEmptyDataLeavesPayloadUntouched() {
	env, err := Decode([]byte(`{"type":"create_room","data":"","id":0}`))
	s.Require().NoError(err)

	var req AddUserToRoomRequest
	s.Require().NoError(env.DecodeData(&req))
	s.Equal(0, req.IndexRoom)
}

func (s *ProtocolSuite) TestDecodeRejectsMalformedFrames() {
	_, err := Decode([]byte(`not json`))
	s.Error(err)

	_, err = Decode([]byte(`{"data":"{}","id":0}`))
	s.Error(err)
}

func (s *ProtocolSuite) TestDecodeDataRejectsMalformedPayload() {
	env, err := Decode([]byte(`{"type":"attack","data":"{broken","id":0}`))
	s.Require().NoError(err)

	var req AttackRequest
	s.Error(env.DecodeData(&req))
}
