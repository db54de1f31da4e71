package dto

import "job-tracker/internal/models"

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// JobResponse отдаёт категории и именами, и id, чтобы клиенты
// обеих старых версий API получали то, что ждут.
type JobResponse struct {
	ID            uint     `json:"id"`
	JobTitle      string   `json:"job_title"`
	TeamLeaderID  uint     `json:"team_leader_id"`
	WorkSize      int      `json:"work_size"`
	Collaborators string   `json:"collaborators"`
	IsFinished    bool     `json:"is_finished"`
	Categories    []string `json:"categories"`
	CategoryIDs   []uint   `json:"category_ids"`
}

func NewJobResponse(j models.Job) JobResponse {
	return JobResponse{
		ID:            j.ID,
		JobTitle:      j.JobTitle,
		TeamLeaderID:  j.TeamLeaderID,
		WorkSize:      j.WorkSize,
		Collaborators: j.Collaborators,
		IsFinished:    j.IsFinished,
		Categories:    j.CategoryNames(),
		CategoryIDs:   j.CategoryIDs(),
	}
}

type JobEnvelope struct {
	Success bool        `json:"success,omitempty"`
	Message string      `json:"message,omitempty"`
	Job     JobResponse `json:"job"`
}

type JobListResponse struct {
	Jobs []JobResponse `json:"jobs"`
}

func NewJobListResponse(jobs []models.Job) JobListResponse {
	out := JobListResponse{Jobs: make([]JobResponse, 0, len(jobs))}
	for _, j := range jobs {
		out.Jobs = append(out.Jobs, NewJobResponse(j))
	}
	return out
}

// UserResponse никогда не содержит хеш пароля.
type UserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	CityFrom string `json:"city_from"`
	Role     string `json:"role"`
	Jobs     []uint `json:"jobs"`
}

func NewUserResponse(u models.User) UserResponse {
	jobs := make([]uint, 0, len(u.Jobs))
	for _, j := range u.Jobs {
		jobs = append(jobs, j.ID)
	}
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		CityFrom: u.CityFrom,
		Role:     string(u.Role),
		Jobs:     jobs,
	}
}

type UserEnvelope struct {
	Success bool         `json:"success,omitempty"`
	Message string       `json:"message,omitempty"`
	User    UserResponse `json:"user"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

func NewUserListResponse(users []models.User) UserListResponse {
	out := UserListResponse{Users: make([]UserResponse, 0, len(users))}
	for _, u := range users {
		out.Users = append(out.Users, NewUserResponse(u))
	}
	return out
}

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

func NewCategoryListResponse(categories []models.Category) CategoryListResponse {
	out := CategoryListResponse{Categories: make([]CategoryResponse, 0, len(categories))}
	for _, c := range categories {
		out.Categories = append(out.Categories, CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return out
}

type DepartmentResponse struct {
	ID      uint   `json:"id"`
	Title   string `json:"title"`
	ChiefID uint   `json:"chief_id"`
	Members string `json:"members"`
	Email   string `json:"email"`
}

func NewDepartmentResponse(d models.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:      d.ID,
		Title:   d.Title,
		ChiefID: d.ChiefID,
		Members: d.Members,
		Email:   d.Email,
	}
}

type DepartmentEnvelope struct {
	Department DepartmentResponse `json:"department"`
}

type DepartmentListResponse struct {
	Departments []DepartmentResponse `json:"departments"`
}

func NewDepartmentListResponse(departments []models.Department) DepartmentListResponse {
	out := DepartmentListResponse{Departments: make([]DepartmentResponse, 0, len(departments))}
	for _, d := range departments {
		out.Departments = append(out.Departments, NewDepartmentResponse(d))
	}
	return out
}
