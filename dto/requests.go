package dto

// CreateUniversityRequest represents the request body for creating a university
type CreateUniversityRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=255"`
	Description string `json:"description" validate:"required,notblank,max=5000"`
	Type        string `json:"type" validate:"required,oneof=Technical Medical Economic Arts Law Other"`
}

// CreateFacultyRequest represents the request body for creating a faculty
type CreateFacultyRequest struct {
	Name         string `json:"name" validate:"required,notblank,max=255"`
	UniversityID uint   `json:"universityId" validate:"required"`
}

// CreateSubjectRequest represents the request body for creating a subject
type CreateSubjectRequest struct {
	Name      string `json:"name" validate:"required,notblank,max=255"`
	FacultyID uint   `json:"facultyId" validate:"required"`
}

// CreateNoteRequest represents the request body for uploading a note
type CreateNoteRequest struct {
	FileName  string `json:"fileName" validate:"required,notblank,max=255"`
	FileType  string `json:"fileType" validate:"required,notblank,max=255"`
	FileSize  int64  `json:"fileSize" validate:"required"`
	FileData  string `json:"fileData" validate:"required,notblank"`
	Professor string `json:"professor" validate:"required,notblank,max=255"`
	Semester  string `json:"semester" validate:"required,notblank,max=100"`
	SubjectID uint   `json:"subjectId" validate:"required"`
}

// UpdateNoteRequest represents the request body for editing note metadata
type UpdateNoteRequest struct {
	FileName  string `json:"fileName" validate:"required,notblank,max=255"`
	Professor string `json:"professor" validate:"required,notblank,max=255"`
	Semester  string `json:"semester" validate:"required,notblank,max=100"`
}
