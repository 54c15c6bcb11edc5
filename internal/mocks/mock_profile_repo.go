package mocks

import (
	"reflect"

	"github.com/golang/mock/gomock"

	"bazarlyq-main/internal/profile"
	types "bazarlyq-main/internal/types/profile"
)

// MockProfileRepo мок для profile.ProfileRepo
type MockProfileRepo struct {
	ctrl     *gomock.Controller
	recorder *MockProfileRepoMockRecorder
}

func NewMockProfileRepo(ctrl *gomock.Controller) *MockProfileRepo {
	mock := &MockProfileRepo{ctrl: ctrl}
	mock.recorder = &MockProfileRepoMockRecorder{mock}
	return mock
}

func (m *MockProfileRepo) EXPECT() *MockProfileRepoMockRecorder {
	return m.recorder
}

func (m *MockProfileRepo) CheckProfile(email, password string) (*profile.Profile, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CheckProfile", email, password)
	ret0, _ := ret[0].(*profile.Profile)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (m *MockProfileRepo) CreateProfile(p types.CreateProfile) (*profile.Profile, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateProfile", p)
	ret0, _ := ret[0].(*profile.Profile)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (m *MockProfileRepo) Info(profileID string) (*profile.Profile, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Info", profileID)
	ret0, _ := ret[0].(*profile.Profile)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (m *MockProfileRepo) ChangeProfile(profileID string, updateProfile types.ChangeProfile) (*profile.Profile, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ChangeProfile", profileID, updateProfile)
	ret0, _ := ret[0].(*profile.Profile)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

type MockProfileRepoMockRecorder struct {
	mock *MockProfileRepo
}

func (mr *MockProfileRepoMockRecorder) CheckProfile(email, password interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(
		mr.mock,
		"CheckProfile",
		reflect.TypeOf((*MockProfileRepo)(nil).CheckProfile),
		email, password,
	)
}

func (mr *MockProfileRepoMockRecorder) CreateProfile(p interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(
		mr.mock,
		"CreateProfile",
		reflect.TypeOf((*MockProfileRepo)(nil).CreateProfile),
		p,
	)
}

func (mr *MockProfileRepoMockRecorder) Info(profileID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(
		mr.mock,
		"Info",
		reflect.TypeOf((*MockProfileRepo)(nil).Info),
		profileID,
	)
}

func (mr *MockProfileRepoMockRecorder) ChangeProfile(profileID, updateProfile interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(
		mr.mock,
		"ChangeProfile",
		reflect.TypeOf((*MockProfileRepo)(nil).ChangeProfile),
		profileID, updateProfile,
	)
}
