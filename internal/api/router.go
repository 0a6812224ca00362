// Package api implements the read-only HTTP surface of spec §6: current
// monitor statuses and current /proc snapshots, wired through gin the way
// the teacher's cmd/probe and pkg/router use it.
package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/last-emo-boy/monitoring-agent-daemon/internal/config"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/procfs"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/status"
)

// NewRouter builds the gin.Engine serving spec §6's endpoints.
func NewRouter(cfg config.ServerConfig, registry *status.Registry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.CORSEnabled {
		r.Use(corsMiddleware())
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "Ok", "name": "monitoring-agent-daemon"})
	})

	r.GET("/monitors/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, registry.Snapshot())
	})

	r.GET("/meminfo/current", func(c *gin.Context) {
		mem, err := procfs.ReadMeminfo()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, mem)
	})

	r.GET("/cpuinfo/current", func(c *gin.Context) {
		info, err := procfs.ReadCPUInfo()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, info)
	})

	r.GET("/loadavg/current", func(c *gin.Context) {
		load, err := procfs.ReadLoadAvg()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, load)
	})

	r.GET("/stat/current", func(c *gin.Context) {
		stat, err := procfs.ReadStat()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stat)
	})

	r.GET("/processes", func(c *gin.Context) {
		procs, err := procfs.ListProcesses()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, procs)
	})

	r.GET("/processes/:pid", func(c *gin.Context) {
		pid, ok := parsePid(c)
		if !ok {
			return
		}
		procs, err := procfs.ListProcesses()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		for _, p := range procs {
			if p.Pid == pid {
				c.JSON(http.StatusOK, p)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "process not found"})
	})

	r.GET("/processes/:pid/threads", func(c *gin.Context) {
		pid, ok := parsePid(c)
		if !ok {
			return
		}
		tids, err := procfs.ListThreads(pid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, tids)
	})

	r.GET("/processes/:pid/statm", func(c *gin.Context) {
		pid, ok := parsePid(c)
		if !ok {
			return
		}
		statm, err := procfs.ReadStatm(pid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, statm)
	})

	return r
}

func parsePid(c *gin.Context) (int, bool) {
	pid, err := strconv.Atoi(c.Param("pid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pid"})
		return 0, false
	}
	return pid, true
}
