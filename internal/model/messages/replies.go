package messages

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"max.ks1230/ledger-bot/internal/entity/ledger"
	"max.ks1230/ledger-bot/internal/model/reports"
	"max.ks1230/ledger-bot/internal/utils"
)

const deadlineLayout = "02.01.2006"

const (
	helpMessage = `🤖 *Bot Keuangan - Perintah yang Tersedia*:

• Catat Pengeluaran:
  pengeluaran <jumlah> [kategori] [keterangan]
  Contoh: pengeluaran 50000 makan siang
  Informal: bayar 50000 makan

• Catat Pemasukan:
  pemasukan <jumlah> [kategori] [keterangan]
  Contoh: pemasukan 1000000 gaji bulanan
  Informal: masuk 1000000 gaji

• Cek Saldo:
  saldo
  Informal: duit, uang

• Lihat Laporan:
  laporan
  Informal: rekap

• Target Tabungan:
  target <jumlah> <nama> [dd.mm.yyyy]
  Contoh: target 5000000 liburan 31.12.2025
  Lihat semua target: target

• Saran Keuangan:
  saran

• Bantuan:
  bantuan
  Informal: tolong, cara

*Kategori Pengeluaran*:
- makan/makanan
- transport/transportasi/bensin
- rumah/kost/sewa
- listrik/air/internet/pulsa
- kesehatan/dokter/obat
- hiburan/nonton/game
- belanja/baju
- pendidikan/kursus/sekolah
- tabungan/nabung
- lainnya

*Kategori Pemasukan*:
- gaji/salary
- bisnis/usaha/dagang
- investasi/saham
- freelance/proyek
- lainnya`

	invalidFormatMessage = "❌ Format tidak valid. Ketik 'bantuan' untuk melihat cara penggunaan."
	failureMessage       = "❌ Maaf, terjadi kesalahan. Coba lagi nanti."
	reportQueuedMessage  = "📊 Laporan sedang disiapkan, mohon tunggu sebentar."
	noGoalsMessage       = "Belum ada target tabungan. Buat dengan: target <jumlah> <nama> [dd.mm.yyyy]"
)

func transactionMessage(rec ledger.Transaction) string {
	title := "✅ Pemasukan tercatat"
	if rec.Type == ledger.Expense {
		title = "✅ Pengeluaran tercatat"
	}
	msg := fmt.Sprintf("%s:\nJumlah: %s\nKategori: %s", title, utils.FormatRupiah(rec.Amount), rec.Category)
	if rec.Description != "" {
		msg += "\nKeterangan: " + rec.Description
	}
	return msg
}

func balanceMessage(amount decimal.Decimal) string {
	return "💰 Saldo Anda: " + utils.FormatRupiah(amount)
}

func goalCreatedMessage(g ledger.SavingsGoal) string {
	msg := fmt.Sprintf("🎯 Target tabungan dibuat:\nNama: %s\nTarget: %s", g.Name, utils.FormatRupiah(g.TargetAmount))
	if g.Deadline != nil {
		msg += "\nTenggat: " + g.Deadline.Format(deadlineLayout)
	}
	return msg
}

func goalsMessage(goals []ledger.SavingsGoal) string {
	if len(goals) == 0 {
		return noGoalsMessage
	}
	return "🎯 Target Tabungan:\n" + strings.Join(reports.GoalLines(goals), "\n")
}
