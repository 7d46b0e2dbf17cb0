package util

const (
	MinAssessedLevel = 2
	MaxAssessedLevel = 4
)

// 题库工作簿上传
const (
	MimeZip  = "application/zip"
	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	MaxWorkbookSize = 10 << 20
)

var AllowedWorkbookExtensions = []string{".xlsx", ".xlsm"}
