package handler

type ContextKey string

var (
	RoleCtxKey  ContextKey = "role"
	SubCtxKey   ContextKey = "sub"
	MyInfoCtx   ContextKey = "myInfo"
	UserInfoCtx ContextKey = "userInfo"
	ProjectCtx  ContextKey = "project"
	EmployeeCtx ContextKey = "employee"
	VehicleCtx  ContextKey = "vehicle"
)
