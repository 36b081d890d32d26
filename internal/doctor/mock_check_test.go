package doctor

import "github.com/stretchr/testify/mock"

// MockCheck is a testify mock of Check with an EXPECT helper.
type MockCheck struct {
	mock.Mock
}

// NewMockCheck returns a MockCheck whose expectations are asserted at cleanup.
func NewMockCheck(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCheck {
	m := &MockCheck{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type MockCheckExpecter struct {
	mock *mock.Mock
}

func (m *MockCheck) EXPECT() *MockCheckExpecter {
	return &MockCheckExpecter{mock: &m.Mock}
}

func (m *MockCheck) Name() string {
	return m.Called().String(0)
}

func (m *MockCheck) Category() string {
	return m.Called().String(0)
}

func (m *MockCheck) Run() *CheckResult {
	res, _ := m.Called().Get(0).(*CheckResult)
	return res
}

func (e *MockCheckExpecter) Name() *mock.Call {
	return e.mock.On("Name")
}

func (e *MockCheckExpecter) Category() *mock.Call {
	return e.mock.On("Category")
}

func (e *MockCheckExpecter) Run() *mock.Call {
	return e.mock.On("Run")
}
