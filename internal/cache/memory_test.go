package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type MemoryCacheTestSuite struct {
	suite.Suite
	ctx   context.Context
	clock time.Time
	cache *MemoryCache
}

func TestMemoryCacheSuite(t *testing.T) {
	suite.Run(t, new(MemoryCacheTestSuite))
}

func (suite *MemoryCacheTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.clock = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	suite.cache = NewMemoryCache(3)
	suite.cache.now = func() time.Time { return suite.clock }
}

func (suite *MemoryCacheTestSuite) TestExpiry() {
	suite.Require().NoError(suite.cache.Set(suite.ctx, "a", []byte("1"), time.Minute))

	value, ok, err := suite.cache.Get(suite.ctx, "a")
	suite.NoError(err)
	suite.True(ok)
	suite.Equal([]byte("1"), value)

	suite.clock = suite.clock.Add(time.Minute)

	_, ok, err = suite.cache.Get(suite.ctx, "a")
	suite.NoError(err)
	suite.False(ok)
	suite.Equal(0, suite.cache.Len())
}

func (suite *MemoryCacheTestSuite) TestEvictsOldest() {
	for i, key := range []string{"a", "b", "c"} {
		suite.clock = suite.clock.Add(time.Duration(i) * time.Second)
		suite.Require().NoError(suite.cache.Set(suite.ctx, key, []byte(key), time.Hour))
	}

	suite.Require().NoError(suite.cache.Set(suite.ctx, "d", []byte("d"), time.Hour))
	suite.Equal(3, suite.cache.Len())

	_, ok, _ := suite.cache.Get(suite.ctx, "a")
	suite.False(ok)

	_, ok, _ = suite.cache.Get(suite.ctx, "d")
	suite.True(ok)
}

func (suite *MemoryCacheTestSuite) TestOverwriteDoesNotEvict() {
	for _, key := range []string{"a", "b", "c"} {
		suite.Require().NoError(suite.cache.Set(suite.ctx, key, []byte(key), time.Hour))
	}

	suite.Require().NoError(suite.cache.Set(suite.ctx, "b", []byte("B"), time.Hour))
	suite.Equal(3, suite.cache.Len())

	value, ok, _ := suite.cache.Get(suite.ctx, "b")
	suite.True(ok)
	suite.Equal([]byte("B"), value)
}

func (suite *MemoryCacheTestSuite) TestReturnedValueIsCopy() {
	suite.Require().NoError(suite.cache.Set(suite.ctx, "a", []byte("abc"), time.Hour))

	value, _, _ := suite.cache.Get(suite.ctx, "a")
	value[0] = 'x'

	again, _, _ := suite.cache.Get(suite.ctx, "a")
	suite.Equal([]byte("abc"), again)
}

func (suite *MemoryCacheTestSuite) TestDeleteAndClose() {
	suite.Require().NoError(suite.cache.Set(suite.ctx, "a", []byte("1"), time.Hour))
	suite.Require().NoError(suite.cache.Delete(suite.ctx, "a"))
	suite.Equal(0, suite.cache.Len())

	suite.Require().NoError(suite.cache.Set(suite.ctx, "b", []byte("1"), time.Hour))
	suite.Require().NoError(suite.cache.Close())
	suite.Equal(0, suite.cache.Len())
}

func (suite *MemoryCacheTestSuite) TestConcurrentAccess() {
	c := NewMemoryCache(50)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			key := fmt.Sprintf("k%d", i%10)
			suite.NoError(c.Set(suite.ctx, key, []byte(key), time.Minute))
			_, _, err := c.Get(suite.ctx, key)
			suite.NoError(err)
		}(i)
	}

	wg.Wait()
	suite.LessOrEqual(c.Len(), 10)
}
