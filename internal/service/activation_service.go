package service

import (
	"Orbit_Community/internal/pkg"
	"Orbit_Community/internal/repository/redis"
)

// ActivationService 账号激活验证码的发送与校验
type ActivationService struct {
	emailCfg pkg.SMTPConfig
	rds      *redis.ActivationRepository
}

func NewActivationService(cfg pkg.SMTPConfig) *ActivationService {
	return &ActivationService{emailCfg: cfg, rds: &redis.ActivationRepository{}}
}

func (s *ActivationService) SendCode(email string) error {
	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}
	if err := s.rds.SetCode(email, code); err != nil {
		return err
	}

	html := pkg.ActivationCodeHTML(code, redis.DefaultActivationTTL)
	return pkg.SendEmail(s.emailCfg, email, "账号激活验证码", html)
}

// VerifyCode 校验通过后一次性删除
func (s *ActivationService) VerifyCode(email, code string) (bool, error) {
	val, err := s.rds.GetCode(email)
	if err != nil {
		return false, err
	}
	if val != code {
		return false, nil
	}
	if err := s.rds.DeleteCode(email); err != nil {
		return false, err
	}
	return true, nil
}
