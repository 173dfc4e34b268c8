package dto

type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	PageSize      int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

func NewPage[T any](content []T, page, pageSize int, totalElements int64) *Page[T] {
	if content == nil {
		content = []T{}
	}

	totalPages := 0
	if totalElements > 0 {
		totalPages = int((totalElements-1)/int64(pageSize) + 1)
	}

	return &Page[T]{
		Content:       content,
		Page:          page,
		PageSize:      pageSize,
		TotalElements: totalElements,
		TotalPages:    totalPages,
	}
}

type OperationResult struct {
	AffectedRecords int64  `json:"affectedRecords"`
	Message         string `json:"message"`
}

func NewOperationResult(affected int64, message string) *OperationResult {
	return &OperationResult{AffectedRecords: affected, Message: message}
}
