// README: Stateless itinerary classification/parsing endpoint.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roteiro/internal/itinerary"
)

type parseReq struct {
	Text string `json:"text"`
}

type parseResp struct {
	IsItinerary bool                 `json:"is_itinerary"`
	Itinerary   *itinerary.Itinerary `json:"itinerary"`
}

// ParseItinerary handles POST /api/itinerary/parse. A text that cannot be
// structured yields "itinerary": null, never an error.
func ParseItinerary(c *gin.Context) {
	var req parseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	resp := parseResp{IsItinerary: itinerary.LooksLikeItinerary(req.Text)}
	if resp.IsItinerary {
		resp.Itinerary, _ = itinerary.Parse(req.Text)
	}
	writeJSON(c, http.StatusOK, resp)
}
