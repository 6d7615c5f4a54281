package service

import "strconv"

// PageSize 每页固定条数.
const PageSize = 20

// PageWindow 返回第 page 页（从 0 开始）的偏移与条数，负数按 0 处理.
func PageWindow(page int) (skip, limit int) {
	if page < 0 {
		page = 0
	}

	return page * PageSize, PageSize
}

// ParsePage 解析 page 查询参数，缺省或非法时为 0.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}

	return n
}
