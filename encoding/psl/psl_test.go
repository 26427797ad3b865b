package psl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pslHeader = `psLayout version 3

match	mis- 	rep. 	N's	Q gap	Q gap	T gap	T gap	strand	Q        	Q   	Q    	Q  	T        	T   	T    	T  	block	blockSizes 	qStarts	 tStarts
     	match	match	   	count	bases	count	bases	      	name     	size	start	end	name     	size	start	end	count
---------------------------------------------------------------------------------------------------------------------------------------------------------------
`

const pslRecord = "150\t0\t0\t0\t0\t0\t1\t100\t+\tread1\t150\t0\t150\tchr1\t10000\t100\t450\t2\t100,50,\t0,100,\t100,400,\n"

func TestScanSkipsHeader(t *testing.T) {
	sc := NewScanner(strings.NewReader(pslHeader + pslRecord))
	var rec Record
	require.True(t, sc.Scan(&rec))
	assert.Equal(t, "chr1", rec.TName)
	assert.Equal(t, "+", rec.Strand)
	assert.Equal(t, 100, rec.TStart)
	assert.Equal(t, 450, rec.TEnd)
	assert.Equal(t, []int{100, 50}, rec.BlockSizes)
	assert.Equal(t, []int{100, 400}, rec.TStarts)
	assert.Equal(t, 2, rec.Blocks())

	assert.False(t, sc.Scan(&rec))
	assert.NoError(t, sc.Err())
}

func TestScanMultipleRecords(t *testing.T) {
	in := pslRecord +
		"80\t0\t0\t0\t0\t0\t0\t0\t-\tread2\t80\t0\t80\tchr2\t5000\t200\t280\t1\t80,\t0,\t200,\n"
	sc := NewScanner(strings.NewReader(in))
	var rec Record
	require.True(t, sc.Scan(&rec))
	assert.Equal(t, "chr1", rec.TName)
	require.True(t, sc.Scan(&rec))
	assert.Equal(t, "chr2", rec.TName)
	assert.Equal(t, "-", rec.Strand)
	assert.Equal(t, []int{200}, rec.TStarts)
	assert.False(t, sc.Scan(&rec))
	assert.NoError(t, sc.Err())
}

func TestScanTruncatedRecord(t *testing.T) {
	sc := NewScanner(strings.NewReader("150\t0\t0\t0\n"))
	var rec Record
	assert.False(t, sc.Scan(&rec))
	assert.Error(t, sc.Err())
	// The error sticks.
	assert.False(t, sc.Scan(&rec))
}

func TestScanBlockCountMismatch(t *testing.T) {
	bad := "150\t0\t0\t0\t0\t0\t1\t100\t+\tread1\t150\t0\t150\tchr1\t10000\t100\t450\t3\t100,50,\t0,100,\t100,400,\n"
	sc := NewScanner(strings.NewReader(bad))
	var rec Record
	assert.False(t, sc.Scan(&rec))
	assert.Error(t, sc.Err())
}
