package envloader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_StringFields(t *testing.T) {
	type Config struct {
		TableName string `env:"TABLE_NAME" envDefault:"bar-orders"`
		Runtime   string `env:"RUNTIME" envDefault:"local"`
		LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	}

	config := &Config{}
	require.NoError(t, Load(config))

	assert.Equal(t, "bar-orders", config.TableName)
	assert.Equal(t, "local", config.Runtime)
	assert.Equal(t, "info", config.LogLevel)

	t.Setenv("TABLE_NAME", "bar-orders-prod")
	t.Setenv("RUNTIME", "lambda")
	t.Setenv("LOG_LEVEL", "debug")

	config2 := &Config{}
	require.NoError(t, Load(config2))

	assert.Equal(t, "bar-orders-prod", config2.TableName)
	assert.Equal(t, "lambda", config2.Runtime)
	assert.Equal(t, "debug", config2.LogLevel)
}

func TestLoad_NumericAndBoolFields(t *testing.T) {
	type Config struct {
		Port    int     `env:"PORT" envDefault:"8080"`
		Retries uint8   `env:"RETRIES" envDefault:"3"`
		Rate    float64 `env:"SAMPLE_RATE" envDefault:"0.5"`
		Enabled bool    `env:"DD_ENABLED" envDefault:"false"`
	}

	t.Setenv("PORT", "9090")
	t.Setenv("DD_ENABLED", "TRUE")

	config := &Config{}
	require.NoError(t, Load(config))

	assert.Equal(t, 9090, config.Port)
	assert.Equal(t, uint8(3), config.Retries)
	assert.InDelta(t, 0.5, config.Rate, 0.0001)
	assert.True(t, config.Enabled)
}

func TestLoad_DurationAndSlice(t *testing.T) {
	type Config struct {
		Timeout time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"5s"`
		Groups  []string      `env:"ADMIN_GROUPS" envDefault:"admin"`
	}

	config := &Config{}
	require.NoError(t, Load(config))
	assert.Equal(t, 5*time.Second, config.Timeout)
	assert.Equal(t, []string{"admin"}, config.Groups)

	t.Setenv("NOTIFY_TIMEOUT", "250ms")
	t.Setenv("ADMIN_GROUPS", "admin, staff,,")

	config2 := &Config{}
	require.NoError(t, Load(config2))
	assert.Equal(t, 250*time.Millisecond, config2.Timeout)
	assert.Equal(t, []string{"admin", "staff"}, config2.Groups)
}

func TestLoad_DefaultDoesNotOverrideExistingValue(t *testing.T) {
	type Config struct {
		TableName string        `env:"TABLE_NAME" envDefault:"bar-orders"`
		Timeout   time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"5s"`
	}

	config := &Config{TableName: "from-yaml", Timeout: time.Second}
	require.NoError(t, Load(config))
	assert.Equal(t, "from-yaml", config.TableName)
	assert.Equal(t, time.Second, config.Timeout)

	t.Setenv("TABLE_NAME", "from-env")
	require.NoError(t, Load(config))
	assert.Equal(t, "from-env", config.TableName)
}

func TestLoad_WithoutEnvTag(t *testing.T) {
	type Config struct {
		Port string `env:"PORT" envDefault:"8080"`
		Host string
	}

	config := &Config{Host: "original"}
	require.NoError(t, Load(config))

	assert.Equal(t, "8080", config.Port)
	assert.Equal(t, "original", config.Host)
}

func TestLoad_EmptyEnvVar(t *testing.T) {
	type Config struct {
		Port     string `env:"PORT" envDefault:"8080"`
		QueueURL string `env:"ORDER_QUEUE_URL"`
	}

	t.Setenv("PORT", "")

	config := &Config{}
	require.NoError(t, Load(config))

	assert.Equal(t, "8080", config.Port)
	assert.Equal(t, "", config.QueueURL)
}

func TestLoad_InvalidConfig(t *testing.T) {
	var config string
	err := Load(config)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "pointer to struct")

	var config2 int
	err = Load(&config2)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "pointer to struct")
}

func TestLoad_ConversionErrors(t *testing.T) {
	type Config struct {
		Port int `env:"PORT" envDefault:"not-a-number"`
	}
	err := Load(&Config{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "error setting field Port")

	type BadDuration struct {
		Timeout time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"soon"`
	}
	var fe *FieldError
	err = Load(&BadDuration{})
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "NOTIFY_TIMEOUT", fe.EnvVar)
	assert.True(t, fe.FromDefault)
	assert.Contains(t, err.Error(), "from envDefault of NOTIFY_TIMEOUT=soon")

	t.Setenv("NOTIFY_TIMEOUT", "later")
	err = Load(&BadDuration{})
	require.ErrorAs(t, err, &fe)
	assert.False(t, fe.FromDefault)
	assert.Equal(t, "later", fe.Value)
	assert.Contains(t, err.Error(), "from env NOTIFY_TIMEOUT=later")

	type Unsupported struct {
		Ports []int `env:"PORTS" envDefault:"1,2"`
	}
	var ute *UnsupportedTypeError
	assert.ErrorAs(t, Load(&Unsupported{}), &ute)
}

func TestMustLoad(t *testing.T) {
	type Config struct {
		Port string `env:"PORT" envDefault:"8080"`
	}

	config := &Config{}
	assert.NotPanics(t, func() {
		MustLoad(config)
	})
	assert.Equal(t, "8080", config.Port)

	assert.Panics(t, func() {
		MustLoad("not-a-pointer")
	})
}

func TestLoad_NestedStructs(t *testing.T) {
	type StorageConfig struct {
		Driver    string `env:"STORAGE_DRIVER" envDefault:"dynamodb"`
		TableName string `env:"TABLE_NAME"`
	}
	type NotifyConfig struct {
		Mode string `env:"NOTIFY_MODE" envDefault:"async"`
	}
	type AppConfig struct {
		Storage StorageConfig
		Notify  *NotifyConfig
		Name    string `env:"SERVICE_NAME" envDefault:"bar-order-service"`
	}

	t.Setenv("TABLE_NAME", "bar-orders")
	t.Setenv("NOTIFY_MODE", "sync")

	config := &AppConfig{}
	require.NoError(t, Load(config))

	assert.Equal(t, "bar-order-service", config.Name)
	assert.Equal(t, "dynamodb", config.Storage.Driver)
	assert.Equal(t, "bar-orders", config.Storage.TableName)
	require.NotNil(t, config.Notify)
	assert.Equal(t, "sync", config.Notify.Mode)
}
