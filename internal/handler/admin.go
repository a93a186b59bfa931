package handler

import (
	"fmt"

	"github.com/pavelc4/nimbus-tg-bot/internal/stats"
	"github.com/pavelc4/nimbus-tg-bot/pkg/utils"
)

// HandleStats runs /stats, owner only.
func (h *Handler) HandleStats(chatID, userID int64) {
	if userID != h.cfg.OwnerID {
		h.msg.SendText(chatID, "❌ <b>This command is restricted to the bot owner.</b>")
		return
	}

	info, err := stats.GetSystemInfo(h.startedAt)
	if err != nil {
		h.msg.SendText(chatID, "❌ <b>Could not collect system stats.</b>")
		return
	}
	snap := h.counters.Snapshot()

	text := fmt.Sprintf(
		"📊 <b>Bot Statistics</b>\n%s\n"+
			"🖥️ <b>Host:</b> <code>%s</code> (%s)\n"+
			"⏱️ <b>System Uptime:</b> %s\n"+
			"⚙️ <b>CPU:</b> %d cores, %.1f%% used\n"+
			"💾 <b>Memory:</b> %s / %s (%.1f%%)\n%s\n"+
			"🤖 <b>Bot Uptime:</b> %s\n"+
			"🧠 <b>Process RSS:</b> %s\n"+
			"🧵 <b>Goroutines:</b> %d (%s)\n"+
			"🗃️ <b>Active Sessions:</b> %d\n%s\n"+
			"⬇️ <b>Downloads:</b> %d (%d failed)\n"+
			"🎬 <b>Video:</b> %d · 🎵 <b>Audio:</b> %d\n"+
			"📦 <b>Delivered:</b> %s\n"+
			"👥 <b>Unique Users:</b> %d",
		captionRule,
		info.Hostname, info.OS,
		utils.FormatSeconds(int(info.SystemUptime.Seconds())),
		info.CPUCores, info.CPUUsage,
		utils.FormatFileSize(int64(info.MemUsed)), utils.FormatFileSize(int64(info.MemTotal)), info.MemPercent,
		captionRule,
		utils.FormatSeconds(int(info.ProcessUptime.Seconds())),
		utils.FormatFileSize(int64(info.ProcessMem)),
		info.Goroutines, info.GoVersion,
		h.downloads.Len()+h.infos.Len()+h.searches.Len(),
		captionRule,
		snap.TotalDownloads, snap.FailedDownloads,
		snap.VideoDownloads, snap.AudioDownloads,
		utils.FormatFileSize(snap.TotalBytes),
		snap.UniqueUsers,
	)
	h.msg.SendText(chatID, text)
}
