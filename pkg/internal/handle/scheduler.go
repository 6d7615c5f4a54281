package handle

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/filevault/pkg/scheduler"
)

// SchedulerJobs 返回所有调度器任务信息.
//
//	@Summary	定时任务列表
//	@Tags		调度器
//	@Produce	json
//	@Param		X-Token	header		string	true	"会话令牌"
//	@Success	200		{object}	map[string][]scheduler.JobInfo
//	@Router		/api/v1/scheduler/jobs [get]
func (h *Handler) SchedulerJobs(c *gin.Context) {
	jobs := []scheduler.JobInfo{}
	if h.Scheduler != nil {
		jobs = h.Scheduler.GetJobInfos()
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// SchedulerRunJob 立即执行一次指定任务.
//
//	@Summary	立即执行任务
//	@Tags		调度器
//	@Produce	json
//	@Param		X-Token	header		string	true	"会话令牌"
//	@Param		name	path		string	true	"任务名称"
//	@Success	202		{object}	map[string]string
//	@Failure	404		{object}	types.ErrorResponse
//	@Router		/api/v1/scheduler/jobs/{name}/run [post]
func (h *Handler) SchedulerRunJob(c *gin.Context) {
	if h.Scheduler == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	if err := h.Scheduler.RunNow(c.Param("name")); err != nil {
		if errors.Is(err, scheduler.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		writeError(c, err)

		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "job triggered"})
}
