// internal/interfaces/http/middleware/device.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DeviceIDKey is the context key holding the caller's device identifier
const DeviceIDKey = "device_id"

// DeviceID resolves the device identifier for a request. App builds send a
// stable X-Device-ID header; browser callers fall back to a cookie, minted on
// first contact.
func DeviceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetHeader("X-Device-ID")

		if deviceID == "" {
			deviceID, _ = c.Cookie("device_id")
		}

		if deviceID == "" {
			deviceID = uuid.New().String()

			// Device cookie (1 year)
			c.SetCookie("device_id", deviceID, 31536000, "/", "", false, true)
		}

		c.Set(DeviceIDKey, deviceID)
		c.Next()
	}
}

// GetDeviceID returns the device identifier resolved for this request
func GetDeviceID(c *gin.Context) string {
	return c.GetString(DeviceIDKey)
}
