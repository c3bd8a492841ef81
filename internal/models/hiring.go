package models

type HiringPredictionRequest struct {
	ResumeText        *string  `json:"resume_text" validate:"required"`
	JobDescription    *string  `json:"job_description" validate:"required"`
	Education         *string  `json:"education" validate:"required"`
	Industry          *string  `json:"industry" validate:"required"`
	WorkType          *string  `json:"work_type" validate:"required"`
	Location          *string  `json:"location" validate:"required"`
	AppliedJobTitle   *string  `json:"applied_job_title" validate:"required"`
	ExperienceYears   *float64 `json:"experience_years" validate:"required"`
	SalaryExpectation *float64 `json:"salary_expectation" validate:"required"`
	OfferedSalary     *float64 `json:"offered_salary" validate:"required"`
	Skills            []string `json:"skills" validate:"required"`
	RequiredSkills    []string `json:"required_skills" validate:"required"`
}

type HiringPredictionResponse struct {
	HiredPrediction   bool    `json:"hired_prediction"`
	HiringProbability float64 `json:"hiring_probability"`
	Message           string  `json:"message"`
}
