package model

// MemberRole 成员角色，社区和小组共用同一套
type MemberRole string

const (
	RoleOwner  MemberRole = "OWNER"
	RoleAdmin  MemberRole = "ADMIN"
	RoleMember MemberRole = "MEMBER"
)

func (r MemberRole) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// AttendanceStatus 出勤状态，可任意往返标记，没有终态
type AttendanceStatus string

const (
	AttendancePending AttendanceStatus = "PENDING"
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePending, AttendancePresent, AttendanceAbsent:
		return true
	}
	return false
}
