// 创建初始管理员账号脚本
//
// 管理员账号不开放注册，首次部署后用本脚本写入。
//
// 用法: go run scripts/seed_admin.go -email admin@quizdom.local -password <密码>

package main

import (
	"errors"
	"flag"
	"log"
	"quizdom_backend/internal/config"
	"quizdom_backend/internal/model"
	"quizdom_backend/internal/repository"
	"quizdom_backend/pkg/database"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	name := flag.String("name", "admin", "管理员用户名")
	fullName := flag.String("full-name", "Quizdom Admin", "管理员姓名")
	email := flag.String("email", "", "管理员邮箱")
	password := flag.String("password", "", "管理员密码")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("缺少 -email 或 -password 参数")
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	users := repository.NewUserRepository(db)
	if _, err := users.FindByEmail(*email); err == nil {
		log.Printf("账号 %s 已存在，跳过", *email)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("查询账号失败: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("密码散列失败: %v", err)
	}

	admin := &model.User{
		Name:     *name,
		Email:    *email,
		Password: string(hashed),
		FullName: *fullName,
		Role:     model.RoleAdmin,
	}
	if err := users.Create(admin); err != nil {
		log.Fatalf("创建管理员失败: %v", err)
	}

	log.Printf("管理员 %s (id=%d) 创建成功", *email, admin.ID)
}
