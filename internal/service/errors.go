package service

import "errors"

// 服务层按错误类别定义哨兵错误，HTTP 层据此映射状态码：
// 调用方错误、可重试的冲突、正常的"不存在"结果和内部错误互相区分。
var (
	// ErrInvalidInput 缺少必填字段，调用方错误，不应重试
	ErrInvalidInput = errors.New("service: 长链接不能为空")
	// ErrAliasTaken 自定义别名已被占用
	ErrAliasTaken = errors.New("service: 别名已被占用")
	// ErrAliasSpaceExhausted 生成别名重试次数耗尽。
	// 在 6 位别名空间下几乎不会发生，一旦出现说明需要加长别名
	ErrAliasSpaceExhausted = errors.New("service: 别名生成重试次数耗尽")
	// ErrAliasNotFound 别名不存在，对系统而言是正常的未命中而非故障
	ErrAliasNotFound = errors.New("service: 短链接不存在")
	// ErrNoData 统计查询没有匹配到任何记录
	ErrNoData = errors.New("service: 没有匹配的数据")
)
