package deploy

import (
	"github.com/stretchr/testify/mock"
)

// MockSession mocks the Session interface for testing
type MockSession struct {
	mock.Mock
}

// Run implements the Session.Run method
func (m *MockSession) Run(script string) error {
	args := m.Called(script)
	return args.Error(0)
}

// Shell implements the Session.Shell method
func (m *MockSession) Shell() error {
	args := m.Called()
	return args.Error(0)
}

// Copy implements the Session.Copy method
func (m *MockSession) Copy(localPath, remotePath string) error {
	args := m.Called(localPath, remotePath)
	return args.Error(0)
}

// Close implements the Session.Close method
func (m *MockSession) Close() {
	m.Called()
}

// MockSessionFactory mocks the SessionFactory interface for testing
type MockSessionFactory struct {
	mock.Mock
}

// NewSession implements the SessionFactory.NewSession method
func (m *MockSessionFactory) NewSession(ctx *Context) (Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(Session), args.Error(1)
}

// MockLocalRunner mocks the LocalRunner interface for testing
type MockLocalRunner struct {
	mock.Mock
}

// Run implements the LocalRunner.Run method
func (m *MockLocalRunner) Run(script string) error {
	args := m.Called(script)
	return args.Error(0)
}

// SpyPresenter records the presenter calls in order
type SpyPresenter struct {
	Events []string
}

func (p *SpyPresenter) Phase(target, phase string) {
	p.Events = append(p.Events, "phase:"+target+":"+phase)
}

func (p *SpyPresenter) Success(target string) {
	p.Events = append(p.Events, "success:"+target)
}

func (p *SpyPresenter) TargetList(names []string) {
	p.Events = append(p.Events, "list")
}
