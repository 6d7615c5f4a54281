package configs

import (
	"fmt"
	"net/url"

	"github.com/spf13/viper"
)

type (
	DBType string
)

const (
	// MongoDB 协议，文档存储默认后端.
	MongoDB DBType = "mongodb"
	Mongo   DBType = "mongo"

	// PostgreSQL 协议.
	PostgreSQL DBType = "postgresql"
	Postgres   DBType = "postgre"
	Pg         DBType = "pg"

	// MySQL 协议.
	MySQL   DBType = "mysql"
	MariaDB DBType = "mariadb"
	// SQLite 协议.
	SQLite DBType = "sqlite"
)

const (
	DefaultDatabaseHost     = "localhost"     // 默认数据库主机
	DefaultDatabasePort     = 27017           // 默认数据库端口
	DefaultDatabaseUser     = ""              // 默认数据库用户
	DefaultDatabasePassword = ""              // 默认数据库密码
	DefaultDatabaseName     = "files_manager" // 默认数据库名称
	DefaultDatabaseSSLMode  = "disable"       // 默认数据库SSL模式
	DefaultMaxOpenConns     = 0               // 默认不限制打开连接数
	DefaultMaxIdleConns     = 5               // 默认最大空闲连接数
)

// DBConfig 文档存储配置. type 为 mongodb 时使用 MongoDB，否则走 GORM.
type DBConfig struct {
	Type         DBType `mapstructure:"type"           rule:"oneof=mongodb mongo postgresql postgre pg mysql mariadb sqlite"`
	Host         string `mapstructure:"host"           rule:"hostname"`
	Port         int    `mapstructure:"port"           rule:"min=1,max=65535"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"       rule:"required"`
	SSLMode      string `mapstructure:"sslmode"`
	URI          string `mapstructure:"uri"` // 显式的 MongoDB 连接串，优先于 host/port
	MaxOpenConns int    `mapstructure:"max_open_conns" rule:"min=0"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" rule:"min=0"`
}

// IsMongo 是否使用 MongoDB 作为文档存储.
func (c *DBConfig) IsMongo() bool {
	return c.Type == MongoDB || c.Type == Mongo
}

// GetDBType 返回数据库类型的字符串表示.
func (c *DBConfig) GetDBType() string {
	switch c.Type {
	case MongoDB, Mongo:
		return "MongoDB"
	case PostgreSQL, Postgres, Pg:
		return "PostgreSQL"
	case MySQL, MariaDB:
		return "MySQL"
	case SQLite:
		return "SQLite"
	default:
		return "Unknown"
	}
}

// GetMongoURI 返回 MongoDB 连接串.
func (c *DBConfig) GetMongoURI() string {
	if c.URI != "" {
		return c.URI
	}

	u := url.URL{
		Scheme: "mongodb",
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
	}
	if c.User != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}

	return u.String()
}

// GetDSN 获取 SQL 数据库的连接字符串，根据不同的数据库类型返回不同格式的DSN.
// MongoDB 请使用 GetMongoURI.
func (c *DBConfig) GetDSN() string {
	dsnMap := map[DBType]func() string{
		PostgreSQL: c.getPgSQLDSN,
		Postgres:   c.getPgSQLDSN,
		Pg:         c.getPgSQLDSN,
		MySQL:      c.getMySQLDSN,
		MariaDB:    c.getMySQLDSN,
		SQLite:     c.getSQLiteDSN,
	}

	if fn, ok := dsnMap[c.Type]; ok {
		return fn()
	}

	return ""
}

// getPgSQLDSN 获取PostgreSQL的DSN.
func (c *DBConfig) getPgSQLDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// getMySQLDSN 获取MySQL的DSN.
func (c *DBConfig) getMySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

// getSQLiteDSN 获取SQLite的DSN. database 为 :memory: 时使用内存库.
func (c *DBConfig) getSQLiteDSN() string {
	if c.Database == ":memory:" {
		return c.Database
	}

	return fmt.Sprintf("file:%s.db", c.Database)
}

// setDefaults 设置数据库配置的默认值.
func (c *DBConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("db.type", MongoDB)
	v.SetDefault("db.host", DefaultDatabaseHost)
	v.SetDefault("db.port", DefaultDatabasePort)
	v.SetDefault("db.user", DefaultDatabaseUser)
	v.SetDefault("db.password", DefaultDatabasePassword)
	v.SetDefault("db.database", DefaultDatabaseName)
	v.SetDefault("db.sslmode", DefaultDatabaseSSLMode)
	v.SetDefault("db.uri", "")
	v.SetDefault("db.max_open_conns", DefaultMaxOpenConns)
	v.SetDefault("db.max_idle_conns", DefaultMaxIdleConns)
}
