package media

import "github.com/labstack/echo/v4"

type Handler interface {
	Upload() echo.HandlerFunc
	GetData() echo.HandlerFunc
	GetDataByType() echo.HandlerFunc
	GetByID() echo.HandlerFunc
	GetSize() echo.HandlerFunc
	GetStats() echo.HandlerFunc
	Sync() echo.HandlerFunc
	Delete() echo.HandlerFunc
}
