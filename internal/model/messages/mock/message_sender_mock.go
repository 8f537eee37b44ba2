package mock

import (
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gojuno/minimock/v3"
)

// MessageSenderMock implements the chat sender used by messages.Service.
type MessageSenderMock struct {
	t minimock.Tester

	SendMessageMock mMessageSenderMockSendMessage
}

func NewMessageSenderMock(t minimock.Tester) *MessageSenderMock {
	m := &MessageSenderMock{t: t}
	if controller, ok := t.(minimock.MockController); ok {
		controller.RegisterMocker(m)
	}
	m.SendMessageMock = mMessageSenderMockSendMessage{mock: m}
	return m
}

type MessageSenderMockSendMessageParams struct {
	Text   string
	UserID int64
}

type MessageSenderMockSendMessageExpectation struct {
	mock    *MessageSenderMock
	params  *MessageSenderMockSendMessageParams
	err     error
	counter uint64
}

type mMessageSenderMockSendMessage struct {
	mock               *MessageSenderMock
	defaultExpectation *MessageSenderMockSendMessageExpectation
	expectations       []*MessageSenderMockSendMessageExpectation

	mu           sync.Mutex
	callArgs     []*MessageSenderMockSendMessageParams
	afterCounter uint64
}

// Expect sets the arguments the next calls must be made with.
func (mm *mMessageSenderMockSendMessage) Expect(text string, userID int64) *mMessageSenderMockSendMessage {
	if mm.defaultExpectation == nil {
		mm.defaultExpectation = &MessageSenderMockSendMessageExpectation{mock: mm.mock}
	}
	mm.defaultExpectation.params = &MessageSenderMockSendMessageParams{Text: text, UserID: userID}
	return mm
}

func (mm *mMessageSenderMockSendMessage) Return(err error) *MessageSenderMock {
	if mm.defaultExpectation == nil {
		mm.defaultExpectation = &MessageSenderMockSendMessageExpectation{mock: mm.mock}
	}
	mm.defaultExpectation.err = err
	return mm.mock
}

// When adds an expectation for specific arguments; use Then to set its result.
func (mm *mMessageSenderMockSendMessage) When(text string, userID int64) *MessageSenderMockSendMessageExpectation {
	e := &MessageSenderMockSendMessageExpectation{
		mock:   mm.mock,
		params: &MessageSenderMockSendMessageParams{Text: text, UserID: userID},
	}
	mm.expectations = append(mm.expectations, e)
	return e
}

func (e *MessageSenderMockSendMessageExpectation) Then(err error) *MessageSenderMock {
	e.err = err
	return e.mock
}

func (m *MessageSenderMock) SendMessage(text string, userID int64) error {
	mm := &m.SendMessageMock
	atomic.AddUint64(&mm.afterCounter, 1)

	params := &MessageSenderMockSendMessageParams{Text: text, UserID: userID}
	mm.mu.Lock()
	mm.callArgs = append(mm.callArgs, params)
	mm.mu.Unlock()

	for _, e := range mm.expectations {
		if reflect.DeepEqual(*e.params, *params) {
			atomic.AddUint64(&e.counter, 1)
			return e.err
		}
	}

	if mm.defaultExpectation != nil {
		atomic.AddUint64(&mm.defaultExpectation.counter, 1)
		if want := mm.defaultExpectation.params; want != nil && !reflect.DeepEqual(*want, *params) {
			m.t.Errorf("MessageSenderMock.SendMessage got unexpected parameters, want: %#v, got: %#v", *want, *params)
		}
		return mm.defaultExpectation.err
	}

	m.t.Fatalf("Unexpected call to MessageSenderMock.SendMessage. %v %v", text, userID)
	return nil
}

// SendMessageAfterCounter returns how many times SendMessage was called.
func (m *MessageSenderMock) SendMessageAfterCounter() uint64 {
	return atomic.LoadUint64(&m.SendMessageMock.afterCounter)
}

// Calls returns the arguments of every SendMessage call.
func (mm *mMessageSenderMockSendMessage) Calls() []*MessageSenderMockSendMessageParams {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	res := make([]*MessageSenderMockSendMessageParams, len(mm.callArgs))
	copy(res, mm.callArgs)
	return res
}

func (m *MessageSenderMock) minimockSendMessageDone() bool {
	mm := &m.SendMessageMock
	for _, e := range mm.expectations {
		if atomic.LoadUint64(&e.counter) < 1 {
			return false
		}
	}
	if mm.defaultExpectation != nil && atomic.LoadUint64(&mm.defaultExpectation.counter) < 1 {
		return false
	}
	return true
}

// MinimockFinish checks that every expected call has happened.
func (m *MessageSenderMock) MinimockFinish() {
	if m.minimockSendMessageDone() {
		return
	}
	mm := &m.SendMessageMock
	for _, e := range mm.expectations {
		if atomic.LoadUint64(&e.counter) < 1 {
			m.t.Errorf("Expected call to MessageSenderMock.SendMessage with params: %#v", *e.params)
		}
	}
	if e := mm.defaultExpectation; e != nil && atomic.LoadUint64(&e.counter) < 1 {
		if e.params == nil {
			m.t.Error("Expected call to MessageSenderMock.SendMessage")
		} else {
			m.t.Errorf("Expected call to MessageSenderMock.SendMessage with params: %#v", *e.params)
		}
	}
}

// MinimockWait waits for all expected calls until timeout, then checks them.
func (m *MessageSenderMock) MinimockWait(timeout time.Duration) {
	timeoutCh := time.After(timeout)
	for {
		if m.minimockSendMessageDone() {
			return
		}
		select {
		case <-timeoutCh:
			m.MinimockFinish()
			return
		case <-time.After(10 * time.Millisecond):
		}
	}
}
