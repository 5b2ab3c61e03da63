package pkg

import "errors"

// 业务错误分类，handler 层据此映射 HTTP 状态码，
// service 层用 fmt.Errorf("%w: ...") 包装后返回
var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyMember      = errors.New("already a member")
	ErrPrerequisiteNotMet = errors.New("prerequisite not met")
	ErrForbidden          = errors.New("forbidden")
	ErrImmutableOwner     = errors.New("owner role is immutable")
	ErrAttendanceDisabled = errors.New("attendance is not enabled")
	ErrInvalidState       = errors.New("invalid state")
)
