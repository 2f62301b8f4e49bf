package controller

import (
	"calibration_quiz/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageController renders the HTML pages of the site.
type PageController struct {
	ImprintContact string
}

func NewPageController(imprintContact string) *PageController {
	return &PageController{ImprintContact: imprintContact}
}

func (c *PageController) data(ctx *gin.Context) gin.H {
	id := util.GetIdentity(ctx)
	return gin.H{
		"user_is_authenticated": id.IsAuthenticated,
		"username":              id.Username,
	}
}

func (c *PageController) Index(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "index.html", c.data(ctx))
}

func (c *PageController) Questionnaire(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "questionnaire.html", c.data(ctx))
}

func (c *PageController) HowToImprove(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "how-to-improve.html", c.data(ctx))
}

func (c *PageController) Imprint(ctx *gin.Context) {
	data := c.data(ctx)
	data["contact"] = c.ImprintContact
	ctx.HTML(http.StatusOK, "imprint.html", data)
}

// Profile redirects anonymous visitors to the start page.
func (c *PageController) Profile(ctx *gin.Context) {
	if !util.GetIdentity(ctx).IsAuthenticated {
		ctx.Redirect(http.StatusFound, "/")
		return
	}
	ctx.HTML(http.StatusOK, "profile.html", c.data(ctx))
}
