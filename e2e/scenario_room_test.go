package e2e

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type testRoomFlowSuite struct {
	BaseWSSuite
}

func TestRoomFlowSuite(t *testing.T) {
	suite.Run(t, &testRoomFlowSuite{})
}

func (s *testRoomFlowSuite) TestFullRoomFlow() {
	t := s.T()
	// unique names so reruns against the same hub stay readable
	alice := s.Dial(t, "alice-"+uuid.NewString()[:8])
	bob := s.Dial(t, "bob-"+uuid.NewString()[:8])

	// --- STEP 1: JOIN BROADCASTS ---
	joined := bob.Read(5 * time.Second)
	s.Require().Equal("System", joined.Sender)
	s.Require().Contains(joined.Message, "joined")

	// --- STEP 2: HUMAN MESSAGE ECHO ---
	alice.Send(Frame{Type: "message", Content: "Quiz me on binary search trees."})
	echo := bob.ReadUntil(5*time.Second, func(f Frame) bool {
		return f.Type == "message" && f.Sender == alice.name
	})
	s.Require().Equal("Quiz me on binary search trees.", echo.Message)

	// --- STEP 3: DELIBERATION ---
	// typing on, at least one agent reply, typing off
	typingOn := bob.ReadUntil(10*time.Second, func(f Frame) bool { return f.Type == "typing" })
	s.Require().True(typingOn.IsTyping)

	reply := bob.ReadUntil(2*time.Minute, func(f Frame) bool {
		return f.Type == "message" && f.Sender != "System" && f.Sender != alice.name
	})
	s.Require().NotEmpty(reply.Message)

	bob.ReadUntil(2*time.Minute, func(f Frame) bool {
		return f.Type == "typing" && !f.IsTyping
	})
}
