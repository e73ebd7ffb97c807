package dto

// SubjectRef is the minimal subject shape nested in the university tree
type SubjectRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// FacultyNode is a faculty inside the university tree
type FacultyNode struct {
	ID           uint         `json:"id"`
	Name         string       `json:"name"`
	UniversityID uint         `json:"universityId"`
	Subjects     []SubjectRef `json:"subjects"`
}

// University is a university with its nested faculties and subjects
type University struct {
	ID          uint          `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Type        string        `json:"type"`
	Faculties   []FacultyNode `json:"faculties"`
}

// UniversityRef is the flat university shape embedded in faculty listings
type UniversityRef struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// Faculty is a faculty as returned by GET /faculties
type Faculty struct {
	ID           uint          `json:"id"`
	Name         string        `json:"name"`
	UniversityID uint          `json:"universityId"`
	University   UniversityRef `json:"university"`
	Subjects     []SubjectRef  `json:"subjects"`
}

// FacultyRef is a faculty with its owning university, embedded in subject listings
type FacultyRef struct {
	ID           uint          `json:"id"`
	Name         string        `json:"name"`
	UniversityID uint          `json:"universityId"`
	University   UniversityRef `json:"university"`
}

// NoteSummary is a note without its file content
type NoteSummary struct {
	ID         uint   `json:"id"`
	FileName   string `json:"fileName"`
	FileType   string `json:"fileType"`
	FileSize   int64  `json:"fileSize"`
	Professor  string `json:"professor"`
	Semester   string `json:"semester"`
	UploadedAt int64  `json:"uploadedAt"`
}

// Subject is a subject as returned by GET /subjects
type Subject struct {
	ID        uint          `json:"id"`
	Name      string        `json:"name"`
	FacultyID uint          `json:"facultyId"`
	Faculty   FacultyRef    `json:"faculty"`
	Notes     []NoteSummary `json:"notes"`
}

// Note is the flat, denormalised note view. University, Faculty and Subject
// hold the ancestor names resolved at read time; UploadedAt is in
// milliseconds since the Unix epoch.
type Note struct {
	ID         uint   `json:"id"`
	University string `json:"university"`
	Faculty    string `json:"faculty"`
	Subject    string `json:"subject"`
	Professor  string `json:"professor"`
	Semester   string `json:"semester"`
	FileName   string `json:"fileName"`
	FileSize   int64  `json:"fileSize"`
	FileType   string `json:"fileType"`
	FileData   string `json:"fileData"`
	UploadedAt int64  `json:"uploadedAt"`
	SubjectID  uint   `json:"subjectId"`
}

// SubjectRecord is the response of the subject create endpoint
type SubjectRecord struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	FacultyID uint   `json:"facultyId"`
}
