package drafts

import "github.com/labstack/echo/v4"

type Handler interface {
	Create() echo.HandlerFunc
	List() echo.HandlerFunc
	GetByID() echo.HandlerFunc
	Update() echo.HandlerFunc
	Delete() echo.HandlerFunc

	StartProcessing() echo.HandlerFunc
	GetProcessingStatus() echo.HandlerFunc
	RunQueue() echo.HandlerFunc
	GetQueueStatus() echo.HandlerFunc
	ClearQueue() echo.HandlerFunc
}
