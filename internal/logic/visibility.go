package logic

import (
	"github.com/fundbridge/dealroom/internal/model"
)

// DefaultVisibleFields 交易室未配置可见性时的默认字段白名单
var DefaultVisibleFields = []string{
	"companyName",
	"website",
	"hq",
	"stage",
	"sector",
	"b2bB2c",
	"tractionHighlights",
	"problem",
	"solution",
	"differentiation",
	"founders",
	"roundType",
	"targetAmount",
	"useOfFunds",
}

// startupFieldReaders 可对投资人开放的申请字段及其取值函数
// 状态、评分、内部备注不在其中，永远不会暴露给投资人
var startupFieldReaders = map[string]func(*model.StartupModel) interface{}{
	"companyName":        func(s *model.StartupModel) interface{} { return s.CompanyName },
	"website":            func(s *model.StartupModel) interface{} { return s.Website },
	"hq":                 func(s *model.StartupModel) interface{} { return s.HQ },
	"foundedYear":        func(s *model.StartupModel) interface{} { return s.FoundedYear },
	"stage":              func(s *model.StartupModel) interface{} { return s.Stage },
	"sector":             func(s *model.StartupModel) interface{} { return s.Sector },
	"b2bB2c":             func(s *model.StartupModel) interface{} { return s.B2bB2c },
	"teamSize":           func(s *model.StartupModel) interface{} { return s.TeamSize },
	"founders":           func(s *model.StartupModel) interface{} { return s.Founders },
	"problem":            func(s *model.StartupModel) interface{} { return s.Problem },
	"solution":           func(s *model.StartupModel) interface{} { return s.Solution },
	"differentiation":    func(s *model.StartupModel) interface{} { return s.Differentiation },
	"businessModel":      func(s *model.StartupModel) interface{} { return s.BusinessModel },
	"tractionHighlights": func(s *model.StartupModel) interface{} { return s.TractionHighlights },
	"monthlyRevenue":     func(s *model.StartupModel) interface{} { return s.MonthlyRevenue },
	"customerCount":      func(s *model.StartupModel) interface{} { return s.CustomerCount },
	"growthRate":         func(s *model.StartupModel) interface{} { return s.GrowthRate },
	"roundType":          func(s *model.StartupModel) interface{} { return s.RoundType },
	"targetAmount":       func(s *model.StartupModel) interface{} { return s.TargetAmount },
	"raisedToDate":       func(s *model.StartupModel) interface{} { return s.RaisedToDate },
	"preMoneyValuation":  func(s *model.StartupModel) interface{} { return s.PreMoneyValuation },
	"useOfFunds":         func(s *model.StartupModel) interface{} { return s.UseOfFunds },
	"pitchDeckUrl":       func(s *model.StartupModel) interface{} { return s.PitchDeckUrl },
}

// KnownStartupField 字段名是否可配置为投资人可见
func KnownStartupField(name string) bool {
	_, ok := startupFieldReaders[name]
	return ok
}

// ProjectStartup 按白名单投影申请字段
// 白名单中的未知字段直接忽略，不报错
func ProjectStartup(s *model.StartupModel, fields []string) map[string]interface{} {
	projection := make(map[string]interface{}, len(fields))
	for _, name := range fields {
		if read, ok := startupFieldReaders[name]; ok {
			projection[name] = read(s)
		}
	}
	return projection
}
