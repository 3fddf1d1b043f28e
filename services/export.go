package services

import (
	"fmt"

	"github.com/Julie983186/DynamicPricing/repositories"

	"github.com/xuri/excelize/v2"
)

// ExportService 把用户的扫描历史导出成 XLSX 工作簿
type ExportService struct {
	historyRepo repositories.HistoryRepository
}

func NewExportService(repo repositories.HistoryRepository) *ExportService {
	return &ExportService{historyRepo: repo}
}

var exportHeaders = []string{
	"掃描日期", "商品名稱", "商品大類", "原價", "折扣價",
	"AI預測價", "合理性", "有效日期", "狀態", "賣場",
}

// ExportHistoryXLSX 返回整本工作簿的字节，支持和列表页一样的筛选条件
func (s *ExportService) ExportHistoryXLSX(userID, search, date string) ([]byte, error) {
	histories, err := s.historyRepo.FindByUserID(userID, search, date)
	if err != nil {
		return nil, fmt.Errorf("查询扫描历史失败: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Sheet1"

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for row, h := range histories {
		p := h.Product
		expireDate := ""
		if p.ExpireDate != nil {
			expireDate = p.ExpireDate.Format("2006-01-02")
		}
		values := []interface{}{
			h.CreatedAt.Format("2006-01-02"),
			p.Name,
			p.ProductType,
			p.Price,
			p.ProPrice,
			p.AiPrice,
			p.Reason,
			expireDate,
			p.Status,
			p.Market,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
