package health

// Input represents the input for health check endpoint
type Input struct{}

// Output represents the output for health check endpoint
type Output struct {
	Body Response
}

// Response represents the health check response
type Response struct {
	Status  string `json:"status" example:"OK" doc:"Состояние сервиса: OK или DEGRADED при недоступном хранилище"`
	Driver  string `json:"driver" example:"sqlite" doc:"Активный драйвер хранилища"`
	Records int    `json:"records" doc:"Число записей в коллекции"`
}
