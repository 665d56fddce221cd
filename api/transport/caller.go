package transport

import (
	"net/http"

	"github.com/ThomasWeyssow/rewaard-api/logging"
	"github.com/ThomasWeyssow/rewaard-api/storage"
	"github.com/ThomasWeyssow/rewaard-api/workflow"
	"github.com/gin-gonic/gin"
)

const (
	ContextCallerKey       = "caller"
	ContextCapabilitiesKey = "capabilities"
)

// CallerMiddleware resolves the x-profile-id header against the profile
// directory and attaches the caller plus derived capabilities. A missing or
// unknown caller is rejected, so capabilities always fail closed.
func CallerMiddleware(profiles storage.ProfileStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("x-profile-id")
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing caller"})
			return
		}

		profile, err := profiles.Get(c.Request.Context(), id)
		if err != nil {
			logging.Log.Warnf("CALLER: could not resolve profile %s: %v", id, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown caller"})
			return
		}

		c.Set(ContextCallerKey, profile)
		c.Set(ContextCapabilitiesKey, workflow.CapabilitiesFor(profile.Roles))
		c.Next()
	}
}

// Caller returns the resolved profile for the request, or nil.
func Caller(c *gin.Context) *storage.Profile {
	if v, ok := c.Get(ContextCallerKey); ok {
		if profile, ok := v.(*storage.Profile); ok {
			return profile
		}
	}
	return nil
}

// CallerCapabilities returns the derived capabilities for the request.
// Absent capabilities are the zero value: everything denied.
func CallerCapabilities(c *gin.Context) workflow.Capabilities {
	if v, ok := c.Get(ContextCapabilitiesKey); ok {
		if caps, ok := v.(workflow.Capabilities); ok {
			return caps
		}
	}
	return workflow.Capabilities{}
}
