package dto

type ExportInput struct {
	Dir string
}

type ExportOutput struct {
	Dir       string
	Notes     []string
	IndexPath string
}
