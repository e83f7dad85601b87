package logic

import "errors"

// 业务错误分类，handler 层据此映射 HTTP 状态码
// 所有错误仅作用于当前请求，不做内部重试
var (
	ErrForbidden  = errors.New("forbidden")          // 角色无权执行该操作
	ErrNotFound   = errors.New("not found")          // 引用的记录不存在
	ErrConflict   = errors.New("conflict")           // 重复记录或唯一约束冲突
	ErrValidation = errors.New("validation failed")  // 缺少必填字段或取值非法
	ErrDependency = errors.New("dependency failure") // 存储或外部依赖故障
)
